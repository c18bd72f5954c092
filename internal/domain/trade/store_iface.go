package trade

import "context"

type StoreAPI interface {
	CreateSale(ctx context.Context, sale Sale) error
	ListSales(ctx context.Context) ([]Sale, error)
	GetSale(ctx context.Context, id string) (Sale, error)
	CreatePurchase(ctx context.Context, purchase Purchase) error
	ListPurchases(ctx context.Context) ([]Purchase, error)
}
