package inventory

// TargetKind identifica el tier de stock que afecta un movimiento.
type TargetKind int

const (
	TargetWarehouse TargetKind = iota
	TargetTechnician
	TargetPool // fondo central de la sede: sin bodega ni técnico
)

// StockTarget es el resultado de resolver el contexto de almacenamiento de un
// movimiento: bodega, técnico o fondo central. Se modela como unión etiquetada
// para que el despacho sea un switch exhaustivo y no una cadena de nil-checks.
type StockTarget struct {
	Kind         TargetKind
	WarehouseID  string // solo cuando Kind = TargetWarehouse
	TechnicianID string // solo cuando Kind = TargetTechnician
}

// WarehouseTarget destino bodega.
func WarehouseTarget(warehouseID string) StockTarget {
	return StockTarget{Kind: TargetWarehouse, WarehouseID: warehouseID}
}

// TechnicianTarget destino técnico.
func TechnicianTarget(technicianID string) StockTarget {
	return StockTarget{Kind: TargetTechnician, TechnicianID: technicianID}
}

// PoolTarget destino fondo central.
func PoolTarget() StockTarget {
	return StockTarget{Kind: TargetPool}
}
