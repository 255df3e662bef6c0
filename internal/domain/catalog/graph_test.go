package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/costeo-pro/internal/domain"
	"github.com/tu-usuario/costeo-pro/internal/domain/catalog"
	"github.com/tu-usuario/costeo-pro/internal/domain/entity"
)

func simple(id string, unitCost string) *catalog.Node {
	return &catalog.Node{IngredientID: id, UnitCost: decimal.RequireFromString(unitCost)}
}

func batch(id string, yield string, lines ...entity.RecipeLine) *catalog.Node {
	return &catalog.Node{
		IngredientID: id,
		IsBatch:      true,
		YieldQty:     decimal.RequireFromString(yield),
		RecipeLines:  lines,
	}
}

func line(refID, qty string) entity.RecipeLine {
	return entity.RecipeLine{IngredientID: refID, Quantity: decimal.RequireFromString(qty)}
}

// ──────────────────────────────────────────────────────────────────────────────
// DetectCycle
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: auto-referencia A -> A.
func TestDetectCycle_AutoReferencia(t *testing.T) {
	g := catalog.NewGraph()
	g.AddNode(batch("salsa", "1", line("salsa", "1")))

	err := g.DetectCycle("salsa")
	assert.ErrorIs(t, err, domain.ErrRecipeCycle,
		"un batch que se referencia a sí mismo debe ser rechazado")
}

// Caso 2: ciclo de dos nodos A -> B -> A.
func TestDetectCycle_CicloDeDos(t *testing.T) {
	g := catalog.NewGraph()
	g.AddNode(batch("a", "1", line("b", "1")))
	g.AddNode(batch("b", "1", line("a", "1")))

	assert.ErrorIs(t, g.DetectCycle("a"), domain.ErrRecipeCycle)
	assert.ErrorIs(t, g.DetectCycle("b"), domain.ErrRecipeCycle)
}

// Caso 3: cadena profunda sin ciclo no debe dar falso positivo.
func TestDetectCycle_CadenaSinCiclo(t *testing.T) {
	g := catalog.NewGraph()
	g.AddNode(simple("harina", "0.50"))
	g.AddNode(batch("masa", "10", line("harina", "5")))
	g.AddNode(batch("base", "4", line("masa", "2")))
	g.AddNode(batch("pizza", "1", line("base", "1")))

	assert.NoError(t, g.DetectCycle("pizza"),
		"una cadena lineal batch -> batch -> simple no es un ciclo")
}

// Caso 4: diamante (dos rutas al mismo insumo) tampoco es ciclo.
func TestDetectCycle_DiamanteNoEsCiclo(t *testing.T) {
	g := catalog.NewGraph()
	g.AddNode(simple("tomate", "1.00"))
	g.AddNode(batch("salsa", "2", line("tomate", "4")))
	g.AddNode(batch("sofrito", "2", line("tomate", "2")))
	g.AddNode(batch("guiso", "1", line("salsa", "1"), line("sofrito", "1")))

	assert.NoError(t, g.DetectCycle("guiso"),
		"dos rutas que convergen en el mismo insumo no forman ciclo")
}

// Caso 5: referencia a un insumo ausente del grafo se ignora (la valida el caso de uso).
func TestDetectCycle_ReferenciaAusenteSeIgnora(t *testing.T) {
	g := catalog.NewGraph()
	g.AddNode(batch("mezcla", "1", line("no-existe", "2")))

	assert.NoError(t, g.DetectCycle("mezcla"))
}

// ──────────────────────────────────────────────────────────────────────────────
// RollupUnitCost
// ──────────────────────────────────────────────────────────────────────────────

func TestRollupUnitCost_BatchSimple(t *testing.T) {
	// 5 de harina a 0.50 + 2 de agua a 0.10 = 2.70, rendimiento 10 -> 0.2700
	g := catalog.NewGraph()
	g.AddNode(simple("harina", "0.50"))
	g.AddNode(simple("agua", "0.10"))
	g.AddNode(batch("masa", "10", line("harina", "5"), line("agua", "2")))

	got := g.RollupUnitCost("masa")
	assert.Equal(t, "0.2700", got.StringFixed(4))
}

func TestRollupUnitCost_BatchAnidado(t *testing.T) {
	// masa = (5 * 0.50) / 10 = 0.25; base = (2 * 0.25 + 1 * 2.00) / 4 = 0.625
	g := catalog.NewGraph()
	g.AddNode(simple("harina", "0.50"))
	g.AddNode(simple("queso", "2.00"))
	g.AddNode(batch("masa", "10", line("harina", "5")))
	g.AddNode(batch("base", "4", line("masa", "2"), line("queso", "1")))

	got := g.RollupUnitCost("base")
	assert.Equal(t, "0.6250", got.StringFixed(4))
}

func TestRollupUnitCost_RedondeoA4Decimales(t *testing.T) {
	// (1 * 1.00) / 3 = 0.3333...
	g := catalog.NewGraph()
	g.AddNode(simple("limon", "1.00"))
	g.AddNode(batch("jugo", "3", line("limon", "1")))

	assert.Equal(t, "0.3333", g.RollupUnitCost("jugo").StringFixed(4))
}

func TestRollupUnitCost_RecetaVaciaORendimientoCero(t *testing.T) {
	g := catalog.NewGraph()
	g.AddNode(batch("pendiente", "10"))
	g.AddNode(simple("sal", "0.05"))
	g.AddNode(batch("sin-rendimiento", "0", line("sal", "1")))

	assert.True(t, g.RollupUnitCost("pendiente").IsZero(),
		"batch sin receta debe costar 0")
	assert.True(t, g.RollupUnitCost("sin-rendimiento").IsZero(),
		"rendimiento 0 debe costar 0, no dividir por cero")
}

func TestRollupUnitCost_InsumoSimpleDevuelveSuCosto(t *testing.T) {
	g := catalog.NewGraph()
	g.AddNode(simple("sal", "0.05"))

	require.Equal(t, "0.05", g.RollupUnitCost("sal").String())
	assert.True(t, g.RollupUnitCost("desconocido").IsZero(),
		"id ausente del grafo devuelve 0")
}
