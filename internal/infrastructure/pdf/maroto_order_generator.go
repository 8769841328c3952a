// Package pdf implementa la generación de la orden de compra imprimible
// que se envía al proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del taller  │  N° Orden + Fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: Nombre + contacto + teléfono + dirección        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Unidad | Material | P.Unit | Subtotal        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuento / Impuesto / Envío / TOTAL   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Costeo-api/internal/application/purchasing"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 120, Green: 60, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// moneyPrinter formatea montos con separador de miles estilo es-CO.
var moneyPrinter = message.NewPrinter(language.Spanish)

var _ purchasing.OrderPDFGenerator = (*MarotoOrderGenerator)(nil)

// MarotoOrderGenerator implementa purchasing.OrderPDFGenerator usando Maroto v2.
type MarotoOrderGenerator struct {
	businessName string
}

// NewMarotoOrderGenerator construye el generador con el nombre del taller
// que encabeza el documento.
func NewMarotoOrderGenerator(businessName string) *MarotoOrderGenerator {
	return &MarotoOrderGenerator{businessName: businessName}
}

// GenerateOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoOrderGenerator) GenerateOrderPDF(
	_ context.Context,
	purchase *entity.Purchase,
	supplier *entity.Supplier,
	lines []purchasing.PurchaseLineForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Compra "+purchase.Number, true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.businessName, purchase))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(supplier))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(purchase))

	if purchase.Note != "" {
		m.AddRows(line.NewRow(2))
		m.AddRows(noteRow(purchase.Note))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: nombre del taller (izq) y N° de orden + fecha (der).
func headerRow(businessName string, purchase *entity.Purchase) core.Row {
	fecha := purchase.Date.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Orden de compra de materias primas", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDEN DE COMPRA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(purchase.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// supplierRow: datos del proveedor destinatario.
func supplierRow(supplier *entity.Supplier) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PROVEEDOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(supplier.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Contacto: %s   |   Tel: %s   |   Dirección: %s",
				nonEmpty(supplier.Contact, "-"),
				nonEmpty(supplier.Phone, "-"),
				nonEmpty(supplier.Address, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Material", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea de la orden.
func tableDetailRows(lines []purchasing.PurchaseLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		qty := l.Qty.String()
		if l.Unit != "" {
			qty += " " + l.Unit
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				qty,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				l.MaterialName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(l.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(purchase *entity.Purchase) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := text.New("TOTAL:", props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 2,
	})
	grandValue := text.New(formatMoney(purchase.Total), props.Text{
		Style: fontstyle.Bold, Size: 10, Align: align.Right,
		Color: colorPrimary, Right: 1,
	})

	return row.New(34).Add(
		col.New(4),
		col.New(4).Add(
			label("Subtotal:"),
			label("Descuento:"),
			label("Impuesto:"),
			label("Envío:"),
			grandLabel,
		),
		col.New(4).Add(
			value(formatMoney(purchase.Subtotal)),
			value(formatMoney(purchase.Discount)),
			value(formatMoney(purchase.Tax)),
			value(formatMoney(purchase.Shipping)),
			grandValue,
		),
	)
}

// noteRow: observaciones de la orden.
func noteRow(note string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("NOTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(note, props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea un monto con separador de miles: 1500000 → "$ 1.500.000".
func formatMoney(d decimal.Decimal) string {
	return moneyPrinter.Sprintf("$ %d", d.Round(0).IntPart())
}
