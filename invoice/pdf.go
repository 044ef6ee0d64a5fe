package invoice

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotocfg "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/LemonieOff/ARDeco-server-sub001/models"
)

// Renderer writes PDF invoices to local disk, named by order id.
type Renderer struct {
	Dir string
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{Dir: dir}
}

// Path is the convention-based location for an order's invoice. Reads
// re-open this path; there is no regeneration on demand.
func (r *Renderer) Path(orderID uint) string {
	return filepath.Join(r.Dir, fmt.Sprintf("invoice_%d.pdf", orderID))
}

// Render produces the invoice PDF for an order snapshot and returns the
// file path. The order's denormalized line items are the only input, so
// later catalog changes never alter the document.
func (r *Renderer) Render(order *models.Order, user *models.User) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", err
	}

	cfg := marotocfg.NewBuilder().
		WithLeftMargin(15).
		WithRightMargin(15).
		Build()
	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, fmt.Sprintf("ARDeco Invoice #%d", order.ID), props.Text{
			Style: fontstyle.Bold,
			Size:  16,
		}),
	)
	m.AddRow(6,
		text.NewCol(12, fmt.Sprintf("Billed to: %s %s <%s>", user.FirstName, user.LastName, user.Email), props.Text{Size: 9}),
	)
	m.AddRow(6,
		text.NewCol(12, fmt.Sprintf("Delivery: %s, %s %s, %s",
			order.DeliveryStreet, order.DeliveryPostal, order.DeliveryCity, order.DeliveryCountry), props.Text{Size: 9}),
	)
	m.AddRow(4)

	m.AddRow(8,
		text.NewCol(5, "Item", props.Text{Style: fontstyle.Bold}),
		text.NewCol(2, "Color", props.Text{Style: fontstyle.Bold}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Align: align.Right}),
		text.NewCol(3, "Amount", props.Text{Style: fontstyle.Bold, Align: align.Right}),
	)
	for _, item := range order.Items {
		m.AddRows(row.New(6).Add(
			col.New(5).Add(text.New(item.FurnitureName, props.Text{Size: 9})),
			col.New(2).Add(text.New(item.Color, props.Text{Size: 9})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", item.Quantity), props.Text{Size: 9, Align: align.Right})),
			col.New(3).Add(text.New(formatAmount(item.Amount), props.Text{Size: 9, Align: align.Right})),
		))
	}

	m.AddRow(10,
		text.NewCol(12, "Total: "+formatAmount(order.TotalAmount), props.Text{
			Style: fontstyle.Bold,
			Size:  12,
			Align: align.Right,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return "", err
	}
	path := r.Path(order.ID)
	if err := doc.Save(path); err != nil {
		return "", err
	}
	return path, nil
}

// formatAmount renders integer minor-currency units as euros.
func formatAmount(cents int) string {
	return fmt.Sprintf("%d.%02d EUR", cents/100, cents%100)
}
