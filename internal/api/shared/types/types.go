package types

// Order enumeration for sorting
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

func (o Order) Desc() bool {
	return o == OrderDesc
}

func (o Order) Asc() bool {
	return o == OrderAsc
}

// Valid checks if an order is valid
func (o Order) Valid() bool {
	return o == OrderAsc || o == OrderDesc
}
