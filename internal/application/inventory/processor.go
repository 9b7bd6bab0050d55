package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	dominv "github.com/jhoicas/Almacen-api/internal/domain/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// MovementProcessor es el caso de uso central del libro de inventario:
// valida y registra movimientos (RECEIPT, ISSUE, RETURN), resuelve el contexto
// de almacenamiento y la variante FIFO, genera el consecutivo legible,
// despacha el ajuste al tier correspondiente (bodega, técnico o fondo central)
// y orquesta la reversión cuando un movimiento cambia de estado o contenido.
//
// Todas las mutaciones de stock de una petición corren dentro de una sola
// transacción (ver DESIGN.md); las asignaciones a técnicos corren aparte,
// una transacción por técnico, con éxito parcial permitido.
type MovementProcessor struct {
	tx          TxRunner
	materials   repository.MaterialRepository
	movements   repository.MovementRepository
	whStock     repository.WarehouseStockRepository
	techStock   repository.TechnicianStockRepository
	inventories repository.InventoryRepository
	warehouses  repository.WarehouseRepository
	log         *logger.Logger
}

// NewMovementProcessor construye el caso de uso.
func NewMovementProcessor(
	tx TxRunner,
	materials repository.MaterialRepository,
	movements repository.MovementRepository,
	whStock repository.WarehouseStockRepository,
	techStock repository.TechnicianStockRepository,
	inventories repository.InventoryRepository,
	warehouses repository.WarehouseRepository,
	log *logger.Logger,
) *MovementProcessor {
	return &MovementProcessor{
		tx:          tx,
		materials:   materials,
		movements:   movements,
		whStock:     whStock,
		techStock:   techStock,
		inventories: inventories,
		warehouses:  warehouses,
		log:         log,
	}
}

// MovementLine una línea de la petición: variante (por id) o código de
// catálogo, cantidad > 0 y precio unitario opcional. SupplierID solo aplica a
// recepciones cuyo proveedor difiere del registrado en la variante.
type MovementLine struct {
	MaterialID string
	Code       string
	SupplierID string
	Quantity   decimal.Decimal
	UnitPrice  *decimal.Decimal
}

// OriginDescriptor origen del movimiento. Kind TECHNICIAN exige TechnicianID.
type OriginDescriptor struct {
	Kind         string
	TechnicianID string
}

// CreateMovementInput entrada para registrar uno o varios movimientos.
// InventoryID indica el contenedor destino explícito; HQPool fuerza el fondo
// central (gana sobre cualquier inferencia). Si ninguno viene, el contexto se
// infiere: contenedor hogar de la variante, primera fila de stock, bodega por
// defecto y, en último término, el fondo central.
type CreateMovementInput struct {
	Type        string
	State       string // vacío = COMPLETED (compatibilidad con registros históricos)
	Lines       []MovementLine
	InventoryID *string
	HQPool      bool
	Origin      *OriginDescriptor
	GroupCode   string
	Assignments []TechnicianAssignment
	ActorID     string
}

// CreateMovements registra las líneas de la petición. Devuelve los movimientos
// creados y, si la petición traía asignaciones a técnicos, el reporte de
// resultados por técnico (éxito parcial permitido).
func (p *MovementProcessor) CreateMovements(ctx context.Context, input CreateMovementInput) ([]*entity.Movement, *AssignmentReport, error) {
	if err := p.validateCreate(input); err != nil {
		return nil, nil, err
	}
	if input.State == "" {
		input.State = entity.MovementStateCOMPLETED
	}
	groupCode := input.GroupCode
	if groupCode == "" {
		groupCode = generateGroupCode(input.Type)
	}

	now := time.Now()
	var created []*entity.Movement

	err := p.tx.Run(ctx, func(r TxRepos) error {
		for i, line := range input.Lines {
			mov, err := p.createLine(r, input, line, groupCode, now)
			if err != nil {
				return fmt.Errorf("línea %d: %w", i+1, err)
			}
			created = append(created, mov)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	var report *AssignmentReport
	if len(input.Assignments) > 0 {
		// La bodega receptora es el contenedor ya resuelto de las líneas de
		// la recepción, no el que trajo la petición (pudo inferirse).
		var receivingInv *string
		if len(created) > 0 {
			receivingInv = created[0].InventoryID
		}
		report = p.processAssignments(ctx, input, groupCode, receivingInv)
	}
	return created, report, nil
}

// createLine procesa una línea dentro de la transacción: variante, contexto de
// almacenamiento, consecutivo, persistencia y despacho del efecto.
func (p *MovementProcessor) createLine(r TxRepos, input CreateMovementInput, line MovementLine, groupCode string, now time.Time) (*entity.Movement, error) {
	material, err := p.resolveMaterial(r, input, line, now)
	if err != nil {
		return nil, err
	}

	container, err := p.resolveContainer(r, input, material)
	if err != nil {
		return nil, err
	}
	// Origen bodega declarado sin contenedor resoluble es inválido.
	if input.Origin != nil && input.Origin.Kind == entity.OriginWarehouse && container == nil {
		return nil, domain.ErrInvalidInput
	}

	// Si la variante no tiene contenedor hogar y la línea resolvió uno,
	// se adopta como hogar para futuras inferencias (mejor esfuerzo).
	if material.InventoryID == nil && container != nil {
		if err := r.Materials.UpdateInventory(material.ID, &container.ID); err != nil {
			p.log.Warn().Err(err).Str("material_id", material.ID).
				Msg("no se pudo fijar el contenedor hogar de la variante")
		}
	}

	seq, err := p.nextSequence(r, input.Type)
	if err != nil {
		return nil, err
	}

	mov := &entity.Movement{
		ID:         uuid.New().String(),
		Sequence:   seq,
		Type:       input.Type,
		State:      input.State,
		MaterialID: material.ID,
		Quantity:   line.Quantity,
		UnitPrice:  line.UnitPrice,
		GroupCode:  groupCode,
		CreatedBy:  input.ActorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if container != nil {
		mov.InventoryID = &container.ID
		kind := entity.OriginWarehouse
		mov.OriginKind = &kind
	}
	if input.Origin != nil && input.Origin.Kind == entity.OriginTechnician {
		kind := entity.OriginTechnician
		techID := input.Origin.TechnicianID
		mov.OriginKind = &kind
		mov.OriginTechnicianID = &techID
	}

	if err := r.Movements.Create(mov); err != nil {
		return nil, err
	}

	// El efecto sobre el tier solo existe en movimientos COMPLETED;
	// uno PENDING no ha tocado stock todavía.
	if mov.State == entity.MovementStateCOMPLETED {
		if err := p.applyEffect(r, mov, false); err != nil {
			return nil, err
		}
	}
	return mov, nil
}

// resolveMaterial determina la variante que la línea realmente afecta.
//   - ISSUE: FIFO entre las variantes que comparten el código de catálogo.
//   - RECEIPT con proveedor ajeno: busca la variante (código, proveedor) y si
//     no existe la crea con stock cero (mejor esfuerzo).
//   - RETURN: la variante nombrada, sin sustitución.
func (p *MovementProcessor) resolveMaterial(r TxRepos, input CreateMovementInput, line MovementLine, now time.Time) (*entity.Material, error) {
	var material *entity.Material
	var err error

	switch {
	case line.MaterialID != "":
		material, err = r.Materials.GetByID(line.MaterialID)
		if err != nil {
			return nil, err
		}
		if material == nil {
			return nil, domain.ErrNotFound
		}
	case line.Code != "":
		variants, err := r.Materials.ListByCodeOldestFirst(line.Code)
		if err != nil {
			return nil, err
		}
		if len(variants) == 0 {
			return nil, domain.ErrNotFound
		}
		material = variants[0]
	default:
		return nil, domain.ErrInvalidInput
	}

	switch input.Type {
	case entity.MovementTypeISSUE:
		variants, err := r.Materials.ListByCodeOldestFirst(material.Code)
		if err != nil {
			return nil, err
		}
		resolved := dominv.ResolveFIFO(variants, line.Quantity)
		if resolved == nil {
			return nil, domain.ErrNoStockAvailable
		}
		return resolved, nil

	case entity.MovementTypeRECEIPT:
		if line.SupplierID == "" || line.SupplierID == material.SupplierID {
			return material, nil
		}
		existing, err := r.Materials.GetByCodeAndSupplier(material.Code, line.SupplierID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return existing, nil
		}
		// Auto-creación de variante: nunca aborta la recepción; si falla se
		// registra y la línea sigue sobre la variante original.
		price := material.Price
		if line.UnitPrice != nil {
			price = *line.UnitPrice
		}
		variant := &entity.Material{
			ID:          uuid.New().String(),
			Code:        material.Code,
			Name:        material.Name,
			SupplierID:  line.SupplierID,
			InventoryID: material.InventoryID,
			StockTotal:  decimal.Zero,
			Price:       price,
			Active:      true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := r.Materials.Create(variant); err != nil {
			p.log.Warn().Err(err).Str("code", material.Code).Str("supplier_id", line.SupplierID).
				Msg("auto-creación de variante falló; se usa la variante original")
			return material, nil
		}
		return variant, nil
	}
	return material, nil
}

// resolveContainer aplica la cadena de prioridad del contexto de
// almacenamiento. Devuelve nil cuando el destino es el fondo central.
//
// Orden estricto: contenedor explícito (error si no existe) → fondo central
// explícito → contenedor hogar de la variante → bodega de la primera fila de
// stock → bodega por defecto del catálogo → fondo central como último recurso.
func (p *MovementProcessor) resolveContainer(r TxRepos, input CreateMovementInput, material *entity.Material) (*entity.Inventory, error) {
	if input.InventoryID != nil {
		inv, err := r.Inventories.GetByID(*input.InventoryID)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			return nil, fmt.Errorf("contenedor %s: %w", *input.InventoryID, domain.ErrInvalidInput)
		}
		return inv, nil
	}
	// La elección explícita del fondo central gana sobre cualquier inferencia.
	if input.HQPool {
		return nil, nil
	}
	if material.InventoryID != nil {
		inv, err := r.Inventories.GetByID(*material.InventoryID)
		if err != nil {
			return nil, err
		}
		if inv != nil {
			return inv, nil
		}
		// Contenedor hogar colgante: se sigue con la cadena de inferencia.
	}
	stock, err := r.WarehouseStock.FirstByMaterial(material.ID)
	if err != nil {
		return nil, err
	}
	if stock != nil {
		inv, err := r.Inventories.FirstByWarehouse(stock.WarehouseID)
		if err != nil {
			return nil, err
		}
		if inv != nil {
			return inv, nil
		}
	}
	wh, err := r.Warehouses.First()
	if err != nil {
		return nil, err
	}
	if wh != nil {
		inv, err := r.Inventories.FirstByWarehouse(wh.ID)
		if err != nil {
			return nil, err
		}
		if inv != nil {
			return inv, nil
		}
	}
	return nil, nil
}

// nextSequence genera el consecutivo legible <PREFIJO>-<N> para el tipo dado.
func (p *MovementProcessor) nextSequence(r TxRepos, movementType string) (string, error) {
	n, err := r.Movements.NextSequence(movementType)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d", entity.MovementPrefixes[movementType], n), nil
}

func (p *MovementProcessor) validateCreate(input CreateMovementInput) error {
	if !entity.ValidType(input.Type) {
		return domain.ErrInvalidInput
	}
	if input.State != "" && !entity.ValidState(input.State) {
		return domain.ErrInvalidInput
	}
	if len(input.Lines) == 0 {
		return domain.ErrInvalidInput
	}
	for _, line := range input.Lines {
		if line.MaterialID == "" && line.Code == "" {
			return domain.ErrInvalidInput
		}
		if !line.Quantity.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	}
	if input.Origin != nil {
		if input.Origin.Kind != entity.OriginWarehouse && input.Origin.Kind != entity.OriginTechnician {
			return domain.ErrInvalidInput
		}
		if input.Origin.Kind == entity.OriginTechnician && input.Origin.TechnicianID == "" {
			return domain.ErrInvalidInput
		}
	}
	if input.HQPool && input.InventoryID != nil {
		return domain.ErrInvalidInput
	}
	if len(input.Assignments) > 0 && input.Type != entity.MovementTypeRECEIPT {
		return domain.ErrInvalidInput
	}
	return nil
}

// generateGroupCode genera el código de agrupación <TIPO>-<timestamp>-<random>
// cuando la petición no trae uno.
func generateGroupCode(movementType string) string {
	random := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%s-%d-%s", movementType, time.Now().Unix(), random)
}
