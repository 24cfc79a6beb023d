package domain

// FunnelStep names a funnel stage and the session flag column that marks it.
// An empty Flag counts every session in the window.
type FunnelStep struct {
	Label string
	Flag  string
}

// DefaultFunnel is the stage set of the executive conversion funnel.
var DefaultFunnel = []FunnelStep{
	{Label: "Sessions"},
	{Label: "Product Views", Flag: "viewed_products"},
	{Label: "Add to Cart", Flag: "added_to_cart"},
	{Label: "Checkout", Flag: "began_checkout"},
	{Label: "Purchase", Flag: "completed_purchase"},
}
