package validation

import (
	"fmt"

	"github.com/lmsforge/packlint/internal/domain"
)

// walkItems visits every item of an organization in document order
// (preorder). Traversal uses an explicit stack so pathological nesting
// depth cannot exhaust the call stack.
func walkItems(org *domain.Organization, visit func(item *domain.Item, location string)) {
	type frame struct {
		item     *domain.Item
		location string
	}

	base := orgLocation(org)
	stack := make([]frame, 0, len(org.Items))
	for i := len(org.Items) - 1; i >= 0; i-- {
		item := &org.Items[i]
		stack = append(stack, frame{item: item, location: itemLocation(base, item)})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(top.item, top.location)
		// Children push in reverse so they pop in document order.
		for i := len(top.item.Items) - 1; i >= 0; i-- {
			child := &top.item.Items[i]
			stack = append(stack, frame{item: child, location: itemLocation(top.location, child)})
		}
	}
}

func orgLocation(org *domain.Organization) string {
	return fmt.Sprintf("organizations/organization[@identifier='%s']", org.Identifier)
}

func itemLocation(parent string, item *domain.Item) string {
	return fmt.Sprintf("%s/item[@identifier='%s']", parent, item.Identifier)
}

func resourceLocation(res *domain.Resource) string {
	return fmt.Sprintf("resources/resource[@identifier='%s']", res.Identifier)
}
