package ds

// Таблица пользователей
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Login    string `gorm:"type:varchar(50);unique;not null"`
	Password string `gorm:"type:varchar(255);not null"`
	FullName string `gorm:"type:varchar(100)"`
	Email    string `gorm:"type:varchar(100)"`

	RoleID uint  `gorm:"not null;default:5"`
	TeamID *uint `gorm:"index"`
}
