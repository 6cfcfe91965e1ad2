package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/familycare/clinic-api/internal/domain"
)

// UserRepository defines persistence access for general users (usuarios).
type UserRepository interface {
	Create(ctx context.Context, user *domain.GeneralUser) error
	GetByID(ctx context.Context, id int64) (*domain.GeneralUser, error)
	GetByEmail(ctx context.Context, email string) (*domain.GeneralUser, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id_usuario, nombre, apellidos, correo, contrasena, telefono, fecha_nacimiento, sexo, tipo_usuario`

func (r *userRepository) Create(ctx context.Context, user *domain.GeneralUser) error {
	const query = `
        INSERT INTO usuarios (nombre, apellidos, correo, contrasena, telefono, fecha_nacimiento, sexo, tipo_usuario)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id_usuario`

	err := r.pool.QueryRow(ctx, query,
		user.Nombre,
		user.Apellidos,
		user.Correo,
		user.Contrasena,
		user.Telefono,
		user.FechaNacimiento,
		user.Sexo,
		string(user.TipoUsuario.OrDefault()),
	).Scan(&user.ID)
	return translateError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.GeneralUser, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE id_usuario=$1`
	return r.getOne(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.GeneralUser, error) {
	query := `SELECT ` + userColumns + ` FROM usuarios WHERE correo=$1`
	return r.getOne(ctx, query, email)
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM usuarios WHERE correo=$1)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, email).Scan(&exists)
	return exists, translateError(err)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg any) (*domain.GeneralUser, error) {
	var (
		user     domain.GeneralUser
		userType *string
	)
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Nombre,
		&user.Apellidos,
		&user.Correo,
		&user.Contrasena,
		&user.Telefono,
		&user.FechaNacimiento,
		&user.Sexo,
		&userType,
	); err != nil {
		return nil, translateError(err)
	}
	if userType != nil {
		user.TipoUsuario = domain.UserType(*userType)
	}
	return &user, nil
}
