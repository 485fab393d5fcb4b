package app

import (
	"go-pos/internal/branch"
	"go-pos/internal/business"
	"go-pos/internal/category"
	"go-pos/internal/expense"
	"go-pos/internal/manager"
	"go-pos/internal/messaging/kafka"
	"go-pos/internal/order"
	"go-pos/internal/product"
	"go-pos/internal/rbac"
	"go-pos/internal/salesman"
	"go-pos/internal/stock"
	"go-pos/internal/store"
	"go-pos/internal/store/gormstore"
	"go-pos/internal/store/memstore"
	"go-pos/internal/supplier"
	"go-pos/internal/user"
)

// backend is the persistence engine every table is opened on. Exactly one of
// gorm and mem is set.
type backend struct {
	gorm *gormstore.DB
	mem  *memstore.DB
}

func (b backend) transactor() store.Transactor {
	if b.gorm != nil {
		return b.gorm
	}
	return b.mem
}

// column options for the in-memory engine; postgres enforces the same
// constraints through its schema.
type columns struct {
	serial bool
	unique [][]string
}

func openTable[T any](b backend, cols columns, opts ...gormstore.Option) store.Table[T] {
	if b.gorm != nil {
		return gormstore.NewTable[T](b.gorm, opts...)
	}

	var mem []memstore.Option
	if cols.serial {
		mem = append(mem, memstore.WithAutoIncrement())
	}
	for _, u := range cols.unique {
		mem = append(mem, memstore.WithUnique(u...))
	}
	return memstore.NewTable[T](b.mem, mem...)
}

// Tables are every table the service reads or writes.
type Tables struct {
	Businesses      store.Table[business.Business]
	Branches        store.Table[branch.Branch]
	Categories      store.Table[category.Category]
	Suppliers       store.Table[supplier.Supplier]
	Products        store.Table[product.Product]
	Stocks          store.Table[stock.Stock]
	Orders          store.Table[order.Order]
	Expenses        store.Table[expense.Expense]
	Salesmen        store.Table[salesman.Salesman]
	Users           store.Table[user.User]
	Managers        store.Table[manager.Manager]
	Roles           store.Table[rbac.Role]
	Permissions     store.Table[rbac.Permission]
	RolePermissions store.Table[rbac.RolePermission]
	Outbox          store.Table[kafka.OutboxEvent]
}

func openTables(b backend) Tables {
	serial := columns{serial: true}
	unique := func(cols ...string) [][]string { return [][]string{cols} }

	return Tables{
		Businesses:      openTable[business.Business](b, columns{}),
		Branches:        openTable[branch.Branch](b, columns{}),
		Categories:      openTable[category.Category](b, columns{serial: true, unique: unique("business_id", "name")}),
		Suppliers:       openTable[supplier.Supplier](b, serial),
		Products:        openTable[product.Product](b, columns{serial: true, unique: unique("business_id", "sku")}),
		Stocks:          openTable[stock.Stock](b, columns{serial: true, unique: unique("branch_id", "product_id")}),
		Orders:          openTable[order.Order](b, serial, gormstore.WithPreload("Items")),
		Expenses:        openTable[expense.Expense](b, serial),
		Salesmen:        openTable[salesman.Salesman](b, columns{}),
		Users:           openTable[user.User](b, columns{unique: unique("email")}),
		Managers:        openTable[manager.Manager](b, columns{unique: unique("user_id")}),
		Roles:           openTable[rbac.Role](b, columns{unique: unique("title")}),
		Permissions:     openTable[rbac.Permission](b, columns{serial: true, unique: unique("code")}),
		RolePermissions: openTable[rbac.RolePermission](b, columns{serial: true, unique: unique("role_id", "permission_id")}),
		Outbox:          openTable[kafka.OutboxEvent](b, columns{}),
	}
}

// Resources are the CRUD resources seeded into the permission catalogue.
var Resources = []string{
	business.Resource,
	branch.Resource,
	category.Resource,
	supplier.Resource,
	product.Resource,
	stock.Resource,
	order.Resource,
	expense.Resource,
	salesman.Resource,
	manager.Resource,
	user.Resource,
	rbac.RoleResource,
	rbac.PermissionResource,
}
