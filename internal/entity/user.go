package entity

import "github.com/raffler-space/backend/pkg/enum"

type GlobalRole string

var (
	RoleSuperAdmin = enum.New(GlobalRole("super_admin"))
	RoleAdmin      = enum.New(GlobalRole("admin"))
	RoleUser       = enum.New(GlobalRole("user"))
)

var GlobalAdminRoles = []GlobalRole{RoleSuperAdmin, RoleAdmin}

type User struct {
	Base

	Name    string
	Address string `gorm:"uniqueIndex"`
	Email   string
	Role    GlobalRole

	// WalletNonce feeds the deterministic key derivation of the custodial
	// wallet owned by this user.
	WalletNonce string
}
