package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/familycare/clinic-api/internal/domain"
	"github.com/familycare/clinic-api/internal/repository"
)

// IdentityStore is an in-memory credential store enforcing the same unique
// constraints as the medicos and usuarios tables.
type IdentityStore struct {
	mu      sync.Mutex
	doctors map[int64]domain.Doctor
	users   map[int64]domain.GeneralUser
	nextDoc int64
	nextUsr int64

	// Err, when set, is returned by every operation.
	Err error
	// AfterExistsCheck runs after each ExistsBy* lookup, outside the lock.
	AfterExistsCheck func()
}

// NewIdentityStore returns an empty store.
func NewIdentityStore() *IdentityStore {
	return &IdentityStore{
		doctors: make(map[int64]domain.Doctor),
		users:   make(map[int64]domain.GeneralUser),
	}
}

// Doctors returns the medicos view of the store.
func (s *IdentityStore) Doctors() *DoctorRepo { return &DoctorRepo{s: s} }

// Users returns the usuarios view of the store.
func (s *IdentityStore) Users() *UserRepo { return &UserRepo{s: s} }

// DoctorCount returns the number of stored doctors.
func (s *IdentityStore) DoctorCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.doctors)
}

// UserCount returns the number of stored general users.
func (s *IdentityStore) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *IdentityStore) afterCheck() {
	if s.AfterExistsCheck != nil {
		s.AfterExistsCheck()
	}
}

// DoctorRepo implements repository.DoctorRepository over an IdentityStore.
type DoctorRepo struct{ s *IdentityStore }

func (r *DoctorRepo) Create(_ context.Context, doctor *domain.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.doctors {
		if existing.Correo == doctor.Correo {
			return &repository.UniqueViolationError{Field: repository.FieldEmail, Constraint: "medicos_correo_key"}
		}
		if existing.CedulaProfesional == doctor.CedulaProfesional {
			return &repository.UniqueViolationError{Field: repository.FieldLicense, Constraint: "medicos_cedula_profesional_key"}
		}
	}
	r.s.nextDoc++
	doctor.ID = r.s.nextDoc
	r.s.doctors[doctor.ID] = *doctor
	return nil
}

func (r *DoctorRepo) GetByID(_ context.Context, id int64) (*domain.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	doctor, ok := r.s.doctors[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &doctor, nil
}

func (r *DoctorRepo) GetByEmail(_ context.Context, email string) (*domain.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, doctor := range r.s.doctors {
		if doctor.Correo == email {
			return &doctor, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *DoctorRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	r.s.afterCheck()
	return existsResult(err)
}

func (r *DoctorRepo) ExistsByLicense(_ context.Context, license string) (bool, error) {
	r.s.mu.Lock()
	found := false
	err := r.s.Err
	for _, doctor := range r.s.doctors {
		if doctor.CedulaProfesional == license {
			found = true
		}
	}
	r.s.mu.Unlock()
	r.s.afterCheck()
	return found, err
}

func (r *DoctorRepo) List(_ context.Context) ([]domain.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	result := make([]domain.Doctor, 0, len(r.s.doctors))
	for _, doctor := range r.s.doctors {
		result = append(result, doctor)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// UserRepo implements repository.UserRepository over an IdentityStore.
type UserRepo struct{ s *IdentityStore }

func (r *UserRepo) Create(_ context.Context, user *domain.GeneralUser) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.users {
		if existing.Correo == user.Correo {
			return &repository.UniqueViolationError{Field: repository.FieldEmail, Constraint: "usuarios_correo_key"}
		}
	}
	r.s.nextUsr++
	user.ID = r.s.nextUsr
	user.TipoUsuario = user.TipoUsuario.OrDefault()
	r.s.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*domain.GeneralUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	user, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.GeneralUser, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, user := range r.s.users {
		if user.Correo == email {
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	r.s.afterCheck()
	return existsResult(err)
}

func existsResult(err error) (bool, error) {
	switch err {
	case nil:
		return true, nil
	case repository.ErrNotFound:
		return false, nil
	default:
		return false, err
	}
}

// Compile-time interface compliance verification
var (
	_ repository.DoctorRepository = (*DoctorRepo)(nil)
	_ repository.UserRepository   = (*UserRepo)(nil)
)
