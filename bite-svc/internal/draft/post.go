package draft

import (
	"fmt"
	"io"
	"strings"
)

// PostItemDraft pairs one video with the product it shows.
type PostItemDraft struct {
	Video     io.Reader
	ProductID int64
}

type PostDraft struct {
	Title string
	Items []PostItemDraft
}

// Validate requires a title and at least one item, and every item needs a
// video and a product.
func (d PostDraft) Validate() error {
	var fields []string
	if strings.TrimSpace(d.Title) == "" {
		fields = append(fields, "title")
	}
	if len(d.Items) == 0 {
		fields = append(fields, "items")
	}
	for i, item := range d.Items {
		if item.Video == nil {
			fields = append(fields, fmt.Sprintf("items[%d].video", i))
		}
		if item.ProductID <= 0 {
			fields = append(fields, fmt.Sprintf("items[%d].product", i))
		}
	}
	return newValidationError(fields)
}

// WithItem returns a copy of the draft with item appended.
func (d PostDraft) WithItem(item PostItemDraft) PostDraft {
	d.Items = append(append([]PostItemDraft(nil), d.Items...), item)
	return d
}

// WithProduct links the item at index to productID.
func (d PostDraft) WithProduct(index int, productID int64) (PostDraft, error) {
	if index < 0 || index >= len(d.Items) {
		return d, fmt.Errorf("no post item at index %d", index)
	}
	d.Items = append([]PostItemDraft(nil), d.Items...)
	d.Items[index].ProductID = productID
	return d, nil
}
