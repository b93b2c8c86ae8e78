package repositories

import (
	"database/sql"

	intconfig "rehabus/internal/config"
	"rehabus/internal/domain"
	"rehabus/internal/domain/models"
)

type MemberRepository struct {
	DB *sql.DB
}

func (r MemberRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r MemberRepository) FindByID(id int64) (models.Member, error) {
	if id <= 0 {
		return models.Member{}, domain.ValidationError{Field: "member_id", Msg: "must be positive"}
	}

	query := `
		SELECT id, name, COALESCE(email,''), COALESCE(phone,''),
		       COALESCE(address,''), COALESCE(status,'')
		FROM members WHERE id=? LIMIT 1`

	var m models.Member
	err := r.db().QueryRow(query, id).Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Address, &m.Status)
	if err == sql.ErrNoRows {
		return models.Member{}, domain.NotFoundError{Resource: "member"}
	}
	if err != nil {
		return models.Member{}, domain.InternalError{Err: err}
	}
	return m, nil
}

// FindCredentials returns the member and stored password hash for login.
func (r MemberRepository) FindCredentials(email string) (models.Member, string, error) {
	query := `
		SELECT id, name, COALESCE(email,''), COALESCE(phone,''),
		       COALESCE(address,''), COALESCE(status,''), password_hash
		FROM members WHERE email=? LIMIT 1`

	var m models.Member
	var hash string
	err := r.db().QueryRow(query, email).Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Address, &m.Status, &hash)
	if err == sql.ErrNoRows {
		return models.Member{}, "", domain.NotFoundError{Resource: "member"}
	}
	if err != nil {
		return models.Member{}, "", domain.InternalError{Err: err}
	}
	return m, hash, nil
}

func (r MemberRepository) Insert(m models.Member, passwordHash string) (int64, error) {
	out, err := r.db().Exec(
		`INSERT INTO members (name, email, phone, address, status, password_hash) VALUES (?,?,?,?,?,?)`,
		m.Name, m.Email, m.Phone, m.Address, m.Status, passwordHash,
	)
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	id, err := out.LastInsertId()
	if err != nil {
		return 0, domain.InternalError{Err: err}
	}
	return id, nil
}
