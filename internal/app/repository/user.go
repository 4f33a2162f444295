package repository

import (
	"tms/internal/app/ds"
)

// Методы для пользователей (ORM)

func (r *Repository) GetUserByID(id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByLogin(login string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("login = ?", login).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UserExistsByLogin(login string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("login = ?", login).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) CreateUser(login, password, fullName, email string, roleID uint, teamID *uint) (*ds.User, error) {
	user := ds.User{
		Login:    login,
		Password: password,
		FullName: fullName,
		Email:    email,
		RoleID:   roleID,
		TeamID:   teamID,
	}

	err := r.db.Create(&user).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}
