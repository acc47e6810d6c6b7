package catalog

import "shopadmin/internal/query"

var (
	refShape    = query.Shape{Fields: []string{"id"}}
	existsShape = query.Shape{Fields: []string{"uuid"}}
)

func nameOnly(alias string) query.Relation {
	return query.Relation{Alias: alias, Shape: query.Shape{Fields: []string{"uuid", "name"}}}
}

func shapes() map[string]map[string]query.Shape {
	return map[string]map[string]query.Shape{
		Customers: {
			query.ShapeGeneral: {Fields: []string{"uuid", "name", "email", "phone", "status", "is_verified", "created_at"}},
			query.ShapeRef:     refShape,
			query.ShapeExists:  existsShape,
		},
		Orders: {
			query.ShapeGeneral: {
				Fields: []string{"uuid", "track_id", "status", "payment_status", "total_amount", "shipping_cost", "created_at"},
				Relations: []query.Relation{
					{Alias: "customer", Shape: query.Shape{Fields: []string{"uuid", "name", "email", "phone"}}},
					nameOnly("payment_method"),
					nameOnly("delivery_service"),
				},
			},
			query.ShapeRef:    refShape,
			query.ShapeExists: existsShape,
		},
		Products: {
			query.ShapeGeneral: {
				Fields: []string{"uuid", "name", "sku", "price", "stock", "is_active", "created_at"},
				Relations: []query.Relation{
					nameOnly("category"),
					{Alias: "primary_image", Shape: query.Shape{Fields: []string{"url", "alt_text"}}},
				},
			},
			query.ShapeRef:    refShape,
			query.ShapeExists: existsShape,
		},
		Vouchers: {
			query.ShapeGeneral: {
				Fields: []string{"uuid", "code", "name", "type", "amount", "quota", "max_usage_per_user", "is_active", "starts_at", "ends_at", "created_at"},
				Relations: []query.Relation{
					{Alias: "voucher_usage", Shape: query.Shape{Fields: []string{"usage_count"}}},
				},
			},
			query.ShapeRef:    refShape,
			query.ShapeExists: existsShape,
		},
		Testimonials: {
			query.ShapeGeneral: {Fields: []string{"uuid", "customer_name", "content", "rating", "is_published", "created_at"}},
			query.ShapeExists:  existsShape,
		},
		Messages: {
			query.ShapeGeneral: {Fields: []string{"uuid", "name", "email", "subject", "body", "is_read", "created_at"}},
			query.ShapeExists:  existsShape,
		},
		Admins: {
			// password hashes never leave the table
			query.ShapeGeneral: {Fields: []string{"uuid", "name", "username", "email", "role", "status", "last_login_at", "created_at"}},
			query.ShapeExists:  existsShape,
		},
		Banners: {
			query.ShapeGeneral: {
				Fields:    []string{"uuid", "title", "image_url", "link_url", "position", "is_active", "created_at"},
				Relations: []query.Relation{nameOnly("campaign")},
			},
			query.ShapeExists: existsShape,
		},
		Campaigns: {
			query.ShapeGeneral: {Fields: []string{"uuid", "name", "title", "type", "status", "starts_at", "ends_at", "created_at"}},
			query.ShapeRef:     refShape,
			query.ShapeExists:  existsShape,
		},
		DeliveryServices: {
			query.ShapeGeneral: {Fields: []string{"uuid", "name", "code", "base_cost", "is_active", "created_at"}},
			query.ShapeRef:     refShape,
			query.ShapeExists:  existsShape,
		},
		PaymentMethods: {
			query.ShapeGeneral: {Fields: []string{"uuid", "name", "type", "bank_name", "account_number", "account_name", "is_active", "created_at"}},
			query.ShapeRef:     refShape,
			query.ShapeExists:  existsShape,
		},
		Categories: {
			query.ShapeGeneral: {
				Fields:    []string{"uuid", "name", "slug", "is_active", "created_at"},
				Relations: []query.Relation{nameOnly("parent")},
			},
			query.ShapeRef:    refShape,
			query.ShapeExists: existsShape,
		},
	}
}
