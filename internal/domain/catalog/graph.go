// Package catalog contiene los servicios puros del catálogo de insumos:
// el grafo de referencias entre insumos compuestos (batch) con detección de
// ciclos, y el rollup recursivo del costo unitario de un batch.
package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
)

// Node nodo del grafo insumo -> insumos referenciados por su receta.
type Node struct {
	IngredientID string
	IsBatch      bool
	UnitCost     decimal.Decimal // costo vigente (insumos simples)
	RecipeLines  []entity.RecipeLine
	YieldQty     decimal.Decimal
}

// Graph grafo dirigido de referencias de recetas de insumos compuestos.
// Se construye con los insumos vigentes más el candidato (creación/edición)
// antes de persistir, para rechazar actualizaciones que cierren un ciclo.
type Graph struct {
	nodes map[string]*Node
}

// NewGraph construye un grafo vacío.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[string]*Node)}
}

// AddNode agrega o reemplaza un nodo. El candidato a editar se agrega al final
// para evaluar el estado que quedaría tras el commit.
func (g *Graph) AddNode(n *Node) {
	g.nodes[n.IngredientID] = n
}

// Node devuelve el nodo por id (nil si no existe).
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// colores del DFS
const (
	white = iota // no visitado
	gray         // en la pila de recursión
	black        // terminado
)

// DetectCycle recorre en profundidad las aristas receta->insumo desde startID.
// Devuelve domain.ErrRecipeCycle si alguna ruta vuelve a un nodo en proceso
// (incluye la auto-referencia A -> A). Las referencias a insumos que no están
// en el grafo se ignoran: esa ausencia la valida el caso de uso.
func (g *Graph) DetectCycle(startID string) error {
	color := make(map[string]int, len(g.nodes))
	var visit func(id string) error
	visit = func(id string) error {
		node := g.nodes[id]
		if node == nil {
			return nil
		}
		color[id] = gray
		for _, line := range node.RecipeLines {
			switch color[line.IngredientID] {
			case gray:
				return domain.ErrRecipeCycle
			case white:
				if err := visit(line.IngredientID); err != nil {
					return err
				}
			}
		}
		color[id] = black
		return nil
	}
	return visit(startID)
}

// RollupUnitCost calcula el costo unitario de un insumo compuesto:
// Σ(cantidad_línea * costoUnitario(insumo_línea)) / rendimiento, redondeado a
// 4 decimales. Los batch anidados se resuelven recursivamente. Llamar después
// de DetectCycle: con un ciclo presente la recursión no terminaría.
// Rendimiento <= 0 o receta vacía devuelven costo 0 (batch pendiente de receta).
func (g *Graph) RollupUnitCost(id string) decimal.Decimal {
	node := g.nodes[id]
	if node == nil {
		return decimal.Zero
	}
	if !node.IsBatch {
		return node.UnitCost
	}
	if len(node.RecipeLines) == 0 || node.YieldQty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, line := range node.RecipeLines {
		total = total.Add(line.Quantity.Mul(g.RollupUnitCost(line.IngredientID)))
	}
	return total.DivRound(node.YieldQty, entity.UnitCostPrecision)
}
