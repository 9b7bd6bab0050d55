package inventory_test

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	appinv "github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios en memoria para los tests del procesador de movimientos.
// Mismo contrato que los adaptadores de PostgreSQL, sin base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	materials   map[string]*entity.Material
	movements   map[string]*entity.Movement
	whStock     map[string]*entity.WarehouseStock // clave material|bodega
	techStock   []*entity.TechnicianStock         // slice: permite simular filas duplicadas heredadas
	inventories map[string]*entity.Inventory
	warehouses  []*entity.Warehouse
	audit       []*entity.AuditEntry

	failAudit   bool
	failTechAdd map[string]bool // technicianID -> AddQuantity falla
}

func newMemStore() *memStore {
	return &memStore{
		materials:   make(map[string]*entity.Material),
		movements:   make(map[string]*entity.Movement),
		whStock:     make(map[string]*entity.WarehouseStock),
		inventories: make(map[string]*entity.Inventory),
		failTechAdd: make(map[string]bool),
	}
}

func stockKey(materialID, warehouseID string) string {
	return materialID + "|" + warehouseID
}

// fakeTxRunner pasa los repos en memoria directamente; los tests no dependen
// de semántica de rollback.
type fakeTxRunner struct{ s *memStore }

func (f *fakeTxRunner) Run(_ context.Context, fn func(r appinv.TxRepos) error) error {
	return fn(f.s.repos())
}

func (s *memStore) repos() appinv.TxRepos {
	return appinv.TxRepos{
		Movements:       &memMovementRepo{s},
		Materials:       &memMaterialRepo{s},
		WarehouseStock:  &memWarehouseStockRepo{s},
		TechnicianStock: &memTechnicianStockRepo{s},
		Inventories:     &memInventoryRepo{s},
		Warehouses:      &memWarehouseRepo{s},
		Audit:           &memAuditRepo{s},
	}
}

// ── Materiales ────────────────────────────────────────────────────────────────

type memMaterialRepo struct{ s *memStore }

var _ repository.MaterialRepository = (*memMaterialRepo)(nil)

func (r *memMaterialRepo) Create(m *entity.Material) error {
	cp := *m
	r.s.materials[m.ID] = &cp
	return nil
}

func (r *memMaterialRepo) GetByID(id string) (*entity.Material, error) {
	m, ok := r.s.materials[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMaterialRepo) GetForUpdate(id string) (*entity.Material, error) {
	return r.GetByID(id)
}

func (r *memMaterialRepo) GetByCodeAndSupplier(code, supplierID string) (*entity.Material, error) {
	for _, m := range r.s.materials {
		if m.Code == code && m.SupplierID == supplierID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMaterialRepo) ListByCodeOldestFirst(code string) ([]*entity.Material, error) {
	var list []*entity.Material
	for _, m := range r.s.materials {
		if m.Code == code {
			cp := *m
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *memMaterialRepo) UpdateStockTotal(id string, total decimal.Decimal) error {
	m, ok := r.s.materials[id]
	if !ok {
		return errors.New("material no existe")
	}
	m.StockTotal = total
	return nil
}

func (r *memMaterialRepo) UpdatePrice(id string, price decimal.Decimal) error {
	m, ok := r.s.materials[id]
	if !ok {
		return errors.New("material no existe")
	}
	m.Price = price
	return nil
}

func (r *memMaterialRepo) UpdateInventory(id string, inventoryID *string) error {
	m, ok := r.s.materials[id]
	if !ok {
		return errors.New("material no existe")
	}
	m.InventoryID = inventoryID
	return nil
}

// ── Movimientos ───────────────────────────────────────────────────────────────

type memMovementRepo struct{ s *memStore }

var _ repository.MovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.s.movements[m.ID] = &cp
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	m, ok := r.s.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMovementRepo) Update(m *entity.Movement) error {
	if _, ok := r.s.movements[m.ID]; !ok {
		return errors.New("movimiento no existe")
	}
	cp := *m
	r.s.movements[m.ID] = &cp
	return nil
}

func (r *memMovementRepo) Delete(id string) error {
	delete(r.s.movements, id)
	return nil
}

// NextSequence replica el escaneo del adaptador real: máximo sufijo numérico
// de los consecutivos <PREFIJO>-<dígitos> del tipo, más uno.
func (r *memMovementRepo) NextSequence(movementType string) (int, error) {
	prefix := entity.MovementPrefixes[movementType] + "-"
	max := 0
	for _, m := range r.s.movements {
		if m.Type != movementType || !strings.HasPrefix(m.Sequence, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(m.Sequence, prefix))
		if err == nil && n > max {
			max = n
		}
	}
	return max + 1, nil
}

func (r *memMovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for _, m := range r.s.movements {
		if filter.MaterialID != "" && m.MaterialID != filter.MaterialID {
			continue
		}
		if filter.GroupCode != "" && m.GroupCode != filter.GroupCode {
			continue
		}
		cp := *m
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// ── Stock de bodega ───────────────────────────────────────────────────────────

type memWarehouseStockRepo struct{ s *memStore }

var _ repository.WarehouseStockRepository = (*memWarehouseStockRepo)(nil)

func (r *memWarehouseStockRepo) Get(materialID, warehouseID string) (*entity.WarehouseStock, error) {
	st, ok := r.s.whStock[stockKey(materialID, warehouseID)]
	if !ok {
		return &entity.WarehouseStock{MaterialID: materialID, WarehouseID: warehouseID, Stock: decimal.Zero}, nil
	}
	cp := *st
	return &cp, nil
}

func (r *memWarehouseStockRepo) GetForUpdate(materialID, warehouseID string) (*entity.WarehouseStock, error) {
	return r.Get(materialID, warehouseID)
}

func (r *memWarehouseStockRepo) Upsert(stock *entity.WarehouseStock) error {
	cp := *stock
	r.s.whStock[stockKey(stock.MaterialID, stock.WarehouseID)] = &cp
	return nil
}

func (r *memWarehouseStockRepo) FirstByMaterial(materialID string) (*entity.WarehouseStock, error) {
	keys := make([]string, 0, len(r.s.whStock))
	for k := range r.s.whStock {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if st := r.s.whStock[k]; st.MaterialID == materialID {
			cp := *st
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memWarehouseStockRepo) SumByMaterial(materialID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, st := range r.s.whStock {
		if st.MaterialID == materialID {
			sum = sum.Add(st.Stock)
		}
	}
	return sum, nil
}

func (r *memWarehouseStockRepo) ListByWarehouse(warehouseID string) ([]*entity.WarehouseStock, error) {
	var list []*entity.WarehouseStock
	for _, st := range r.s.whStock {
		if st.WarehouseID == warehouseID {
			cp := *st
			list = append(list, &cp)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].MaterialID < list[j].MaterialID })
	return list, nil
}

// ── Stock de técnicos ─────────────────────────────────────────────────────────

type memTechnicianStockRepo struct{ s *memStore }

var _ repository.TechnicianStockRepository = (*memTechnicianStockRepo)(nil)

// GetForUpdate agrega filas duplicadas del mismo par, igual que el adaptador
// SQL (SUM bajo bloqueo).
func (r *memTechnicianStockRepo) GetForUpdate(materialID, technicianID string) (*entity.TechnicianStock, error) {
	agg := &entity.TechnicianStock{MaterialID: materialID, TechnicianID: technicianID, Quantity: decimal.Zero}
	for _, st := range r.s.techStock {
		if st.MaterialID == materialID && st.TechnicianID == technicianID {
			agg.Quantity = agg.Quantity.Add(st.Quantity)
			if st.UpdatedAt.After(agg.UpdatedAt) {
				agg.UpdatedAt = st.UpdatedAt
			}
		}
	}
	return agg, nil
}

// Upsert colapsa duplicados del par y deja exactamente una fila con la
// cantidad dada, igual que el adaptador SQL (DELETE + INSERT).
func (r *memTechnicianStockRepo) Upsert(stock *entity.TechnicianStock) error {
	kept := r.s.techStock[:0]
	for _, st := range r.s.techStock {
		if st.MaterialID != stock.MaterialID || st.TechnicianID != stock.TechnicianID {
			kept = append(kept, st)
		}
	}
	cp := *stock
	r.s.techStock = append(kept, &cp)
	return nil
}

func (r *memTechnicianStockRepo) AddQuantity(materialID, technicianID string, delta decimal.Decimal) error {
	if r.s.failTechAdd[technicianID] {
		return errors.New("fallo simulado al acreditar técnico")
	}
	carried, err := r.GetForUpdate(materialID, technicianID)
	if err != nil {
		return err
	}
	carried.Quantity = carried.Quantity.Add(delta)
	carried.UpdatedAt = time.Now()
	return r.Upsert(carried)
}

func (r *memTechnicianStockRepo) SumByMaterial(materialID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, st := range r.s.techStock {
		if st.MaterialID == materialID {
			sum = sum.Add(st.Quantity)
		}
	}
	return sum, nil
}

// ListByTechnician agrega filas duplicadas del mismo material, igual que el
// adaptador SQL (GROUP BY material).
func (r *memTechnicianStockRepo) ListByTechnician(technicianID string) ([]*entity.TechnicianStock, error) {
	agg := make(map[string]*entity.TechnicianStock)
	for _, st := range r.s.techStock {
		if st.TechnicianID != technicianID {
			continue
		}
		if cur, ok := agg[st.MaterialID]; ok {
			cur.Quantity = cur.Quantity.Add(st.Quantity)
			if st.UpdatedAt.After(cur.UpdatedAt) {
				cur.UpdatedAt = st.UpdatedAt
			}
			continue
		}
		cp := *st
		agg[st.MaterialID] = &cp
	}
	keys := make([]string, 0, len(agg))
	for k := range agg {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	list := make([]*entity.TechnicianStock, 0, len(keys))
	for _, k := range keys {
		list = append(list, agg[k])
	}
	return list, nil
}

func (r *memTechnicianStockRepo) ListByMaterial(materialID string) ([]*entity.TechnicianStock, error) {
	var list []*entity.TechnicianStock
	for _, st := range r.s.techStock {
		if st.MaterialID == materialID {
			cp := *st
			list = append(list, &cp)
		}
	}
	return list, nil
}

// ── Almacenes, bodegas y auditoría ───────────────────────────────────────────

type memInventoryRepo struct{ s *memStore }

var _ repository.InventoryRepository = (*memInventoryRepo)(nil)

func (r *memInventoryRepo) GetByID(id string) (*entity.Inventory, error) {
	inv, ok := r.s.inventories[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memInventoryRepo) FirstByWarehouse(warehouseID string) (*entity.Inventory, error) {
	keys := make([]string, 0, len(r.s.inventories))
	for k := range r.s.inventories {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if inv := r.s.inventories[k]; inv.WarehouseID == warehouseID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

type memWarehouseRepo struct{ s *memStore }

var _ repository.WarehouseRepository = (*memWarehouseRepo)(nil)

func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	for _, w := range r.s.warehouses {
		if w.ID == id {
			cp := *w
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memWarehouseRepo) First() (*entity.Warehouse, error) {
	if len(r.s.warehouses) == 0 {
		return nil, nil
	}
	cp := *r.s.warehouses[0]
	return &cp, nil
}

func (r *memWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	for _, w := range r.s.warehouses {
		cp := *w
		list = append(list, &cp)
	}
	return list, nil
}

type memAuditRepo struct{ s *memStore }

var _ repository.AuditRepository = (*memAuditRepo)(nil)

func (r *memAuditRepo) Record(entry *entity.AuditEntry) error {
	if r.s.failAudit {
		return errors.New("fallo simulado de auditoría")
	}
	cp := *entry
	r.s.audit = append(r.s.audit, &cp)
	return nil
}
