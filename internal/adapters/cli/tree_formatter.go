package cli

import (
	"fmt"
	"strings"

	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/game"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/inventory"
	"github.com/LeonIngman/LTH-Game-sub001/internal/domain/level"
)

// NodeKind is the role of a node in a level's supply chain
type NodeKind string

const (
	NodeProduct  NodeKind = "PRODUCT"
	NodeMaterial NodeKind = "MATERIAL"
	NodeSupplier NodeKind = "SUPPLIER"
	NodeCustomer NodeKind = "CUSTOMER"
)

// SupplyChainNode is one entry of the rendered supply chain
type SupplyChainNode struct {
	Label  string
	Kind   NodeKind
	Detail string

	// Stock tracking, set only when the tree is built from a game state
	Tracked     bool
	OnHand      int
	SafetyStock int

	Children []*SupplyChainNode
}

// BelowSafetyStock reports whether a tracked node is short of its safety stock
func (n *SupplyChainNode) BelowSafetyStock() bool {
	return n.Tracked && n.OnHand < n.SafetyStock
}

// CountNodes returns the number of nodes in the subtree
func (n *SupplyChainNode) CountNodes() int {
	count := 1
	for _, child := range n.Children {
		count += child.CountNodes()
	}
	return count
}

// BuildSupplyChainTree lays out the meal, its ingredients with their suppliers, and the customers.
// When state is non-nil, material nodes carry on-hand stock.
func BuildSupplyChainTree(cfg *level.Config, state *game.GameState) *SupplyChainNode {
	root := &SupplyChainNode{
		Label:  "burger meal",
		Kind:   NodeProduct,
		Detail: fmt.Sprintf("production %s/meal", formatMoney(cfg.ProductionCostPerUnit)),
	}
	if state != nil {
		root.Tracked = true
		root.OnHand = state.Inventory.Get(inventory.FinishedGoods)
	}

	for _, m := range inventory.RawMaterials() {
		perMeal := cfg.Recipe.Get(m)
		if perMeal == 0 {
			continue
		}
		material := &SupplyChainNode{
			Label:       m.String(),
			Kind:        NodeMaterial,
			Detail:      fmt.Sprintf("x%d per meal", perMeal),
			SafetyStock: cfg.SafetyStock.Get(m),
		}
		if state != nil {
			material.Tracked = true
			material.OnHand = state.Inventory.Get(m)
		}
		for _, s := range cfg.Suppliers {
			offer, ok := s.Offer(m)
			if !ok {
				continue
			}
			material.Children = append(material.Children, &SupplyChainNode{
				Label:  s.ID,
				Kind:   NodeSupplier,
				Detail: fmt.Sprintf("%s/unit, %d day lead time", formatMoney(offer.BasePrice), s.LeadTime),
			})
		}
		root.Children = append(root.Children, material)
	}

	for _, c := range cfg.Customers {
		detail := fmt.Sprintf("%s/unit, %d day lead time", formatMoney(c.PricePerUnit), c.LeadTime)
		if c.TotalRequirement > 0 {
			shipped := 0
			if state != nil {
				shipped = state.CustomerShipped[c.ID]
			}
			detail += fmt.Sprintf(", %d/%d shipped", shipped, c.TotalRequirement)
		}
		root.Children = append(root.Children, &SupplyChainNode{Label: c.ID, Kind: NodeCustomer, Detail: detail})
	}

	return root
}

// TreeFormatter renders supply chain trees for the terminal
type TreeFormatter struct {
	useColors bool
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(useColors bool) *TreeFormatter {
	return &TreeFormatter{useColors: useColors}
}

// FormatTree renders a supply chain tree with visual indicators
func (f *TreeFormatter) FormatTree(root *SupplyChainNode) string {
	if root == nil {
		return "(empty tree)\n"
	}

	var builder strings.Builder
	f.formatNode(&builder, root, "", true, true)
	return builder.String()
}

// formatNode recursively formats a node and its children
func (f *TreeFormatter) formatNode(builder *strings.Builder, node *SupplyChainNode, prefix string, isLast bool, isRoot bool) {
	var linePrefix string
	if isRoot {
		linePrefix = ""
	} else if isLast {
		linePrefix = prefix + "└── "
	} else {
		linePrefix = prefix + "├── "
	}

	stockText := ""
	if node.Tracked {
		stockText = fmt.Sprintf(" (%d on hand)", node.OnHand)
	}

	builder.WriteString(fmt.Sprintf("%s%s %s [%s%s%s] %s%s\n",
		linePrefix,
		f.getStatusIcon(node),
		node.Label,
		f.getKindColor(node.Kind),
		node.Kind,
		f.colorReset(),
		node.Detail,
		stockText,
	))

	if len(node.Children) > 0 {
		var childPrefix string
		if isRoot {
			childPrefix = ""
		} else if isLast {
			childPrefix = prefix + "    "
		} else {
			childPrefix = prefix + "│   "
		}

		for i, child := range node.Children {
			f.formatNode(builder, child, childPrefix, i == len(node.Children)-1, false)
		}
	}
}

func (f *TreeFormatter) getStatusIcon(node *SupplyChainNode) string {
	switch {
	case !node.Tracked:
		return "[-]"
	case node.BelowSafetyStock():
		return "[!]"
	default:
		return "[✓]"
	}
}

// getKindColor returns the ANSI color code for a node kind
func (f *TreeFormatter) getKindColor(kind NodeKind) string {
	if !f.useColors {
		return ""
	}

	switch kind {
	case NodeSupplier:
		return "\033[32m" // Green
	case NodeCustomer:
		return "\033[36m" // Cyan
	case NodeMaterial:
		return "\033[33m" // Yellow
	default:
		return ""
	}
}

func (f *TreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}
