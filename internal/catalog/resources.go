package catalog

import "shopadmin/internal/query"

// Resource names double as URL segments.
const (
	Customers        = "customers"
	Orders           = "orders"
	Products         = "products"
	Vouchers         = "vouchers"
	Testimonials     = "testimonials"
	Messages         = "messages"
	Admins           = "admins"
	Banners          = "banners"
	Campaigns        = "campaigns"
	DeliveryServices = "delivery-services"
	PaymentMethods   = "payment-methods"
	Categories       = "categories"
)

var notDeleted = query.Condition{Field: "deleted_at", Op: query.OpIsNull}

func resources() []*query.Resource {
	return []*query.Resource{
		{
			Name:         Customers,
			Table:        "customers",
			SearchFields: []string{"name", "email", "phone"},
			Filters: []query.CategoricalFilter{
				{Key: "status", Field: "status", Kind: query.MatchExact},
				{Key: "isVerified", Field: "is_verified", Kind: query.MatchBool},
			},
			DefaultLimit: 10,
		},
		{
			Name:         Orders,
			Table:        "orders",
			SearchFields: []string{"track_id", "customer.name"},
			Filters: []query.CategoricalFilter{
				{Key: "status", Field: "status", Kind: query.MatchExact},
				{Key: "paymentStatus", Field: "payment_status", Kind: query.MatchExact},
				{Key: "paymentMethodUuid", Field: "payment_method.uuid", Kind: query.MatchSet},
				{Key: "deliveryServiceUuid", Field: "delivery_service.uuid", Kind: query.MatchSet},
			},
			DefaultLimit: 10,
			Joins: []query.Join{
				{Alias: "customer", Table: "customers", ForeignKey: "id", LocalKey: "customer_id"},
				{Alias: "payment_method", Table: "payment_methods", ForeignKey: "id", LocalKey: "payment_method_id"},
				{Alias: "delivery_service", Table: "delivery_services", ForeignKey: "id", LocalKey: "delivery_service_id"},
			},
		},
		{
			Name:         Products,
			Table:        "products",
			SearchFields: []string{"name", "sku"},
			Filters: []query.CategoricalFilter{
				{Key: "isActive", Field: "is_active", Kind: query.MatchBool},
				{Key: "categoryUuid", Field: "category.uuid", Kind: query.MatchSet},
			},
			Standing:     []query.Condition{notDeleted},
			DefaultLimit: 12,
			Joins: []query.Join{
				{Alias: "category", Table: "categories", ForeignKey: "id", LocalKey: "category_id"},
				{
					Alias: "primary_image", Table: "product_images", ForeignKey: "product_id", LocalKey: "id",
					Where: []query.Condition{{Field: "is_primary", Op: query.OpEq, Value: true}},
				},
			},
		},
		{
			Name:         Vouchers,
			Table:        "vouchers",
			SearchFields: []string{"code", "name"},
			Filters: []query.CategoricalFilter{
				{Key: "type", Field: "type", Kind: query.MatchExact},
				{Key: "isActive", Field: "is_active", Kind: query.MatchBool},
			},
			Standing:     []query.Condition{notDeleted},
			DefaultLimit: 10,
			Joins: []query.Join{
				{
					Alias: "voucher_usage", Table: "voucher_usages", ForeignKey: "voucher_id", LocalKey: "id",
					SubjectColumn: "customer_uuid",
				},
			},
		},
		{
			Name:         Testimonials,
			Table:        "testimonials",
			SearchFields: []string{"customer_name", "content"},
			Filters: []query.CategoricalFilter{
				{Key: "isPublished", Field: "is_published", Kind: query.MatchBool},
				{Key: "rating", Field: "rating", Kind: query.MatchSet},
			},
			DefaultLimit: 10,
		},
		{
			Name:         Messages,
			Table:        "messages",
			SearchFields: []string{"name", "email", "subject"},
			Filters: []query.CategoricalFilter{
				{Key: "isRead", Field: "is_read", Kind: query.MatchBool},
			},
			DefaultLimit: 20,
		},
		{
			Name:         Admins,
			Table:        "admins",
			SearchFields: []string{"name", "username", "email"},
			Filters: []query.CategoricalFilter{
				{Key: "role", Field: "role", Kind: query.MatchExact},
				{Key: "status", Field: "status", Kind: query.MatchExact},
			},
			DefaultLimit: 10,
		},
		{
			Name:         Banners,
			Table:        "banners",
			SearchFields: []string{"title"},
			Filters: []query.CategoricalFilter{
				{Key: "isActive", Field: "is_active", Kind: query.MatchBool},
				{Key: "position", Field: "position", Kind: query.MatchExact},
				{Key: "campaignUuid", Field: "campaign.uuid", Kind: query.MatchSet},
			},
			DefaultLimit: 10,
			Joins: []query.Join{
				{Alias: "campaign", Table: "campaigns", ForeignKey: "id", LocalKey: "campaign_id"},
			},
		},
		{
			Name:         Campaigns,
			Table:        "campaigns",
			SearchFields: []string{"name", "title"},
			Filters: []query.CategoricalFilter{
				{Key: "status", Field: "status", Kind: query.MatchExact},
				{Key: "type", Field: "type", Kind: query.MatchExact},
			},
			DefaultLimit: 10,
		},
		{
			Name:         DeliveryServices,
			Table:        "delivery_services",
			SearchFields: []string{"name", "code"},
			Filters: []query.CategoricalFilter{
				{Key: "isActive", Field: "is_active", Kind: query.MatchBool},
			},
			DefaultLimit: 10,
		},
		{
			Name:         PaymentMethods,
			Table:        "payment_methods",
			SearchFields: []string{"name", "bank_name", "account_number", "account_name"},
			Filters: []query.CategoricalFilter{
				{Key: "type", Field: "type", Kind: query.MatchExact},
				{Key: "isActive", Field: "is_active", Kind: query.MatchBool},
			},
			DefaultLimit: 10,
		},
		{
			Name:         Categories,
			Table:        "categories",
			SearchFields: []string{"name"},
			Filters: []query.CategoricalFilter{
				{Key: "isActive", Field: "is_active", Kind: query.MatchBool},
				{Key: "parentUuid", Field: "parent.uuid", Kind: query.MatchSet},
			},
			Standing:     []query.Condition{notDeleted},
			DefaultLimit: 20,
			Joins: []query.Join{
				{Alias: "parent", Table: "categories", ForeignKey: "id", LocalKey: "parent_id"},
			},
		},
	}
}
