package usecase

import (
	"context"
	"errors"

	"go-admin-panel/domain"
)

var roleSortPolicy = domain.SortPolicy{
	Fields: map[string]string{
		"name":   "name",
		"status": "status",
	},
	DefaultField:     "name",
	DefaultDirection: domain.SortAsc,
}

type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	FindOne(ctx context.Context, filter *domain.RoleFilter, option *domain.FindOneOption) (*domain.Role, error)
	FindMany(ctx context.Context, filter *domain.RoleFilter, option *domain.FindManyOption) ([]*domain.Role, error)
	FindPage(ctx context.Context, filter *domain.RoleFilter, option *domain.FindPageOption) ([]*domain.Role, *domain.Pagination, error)
	Update(ctx context.Context, role *domain.Role) error
	ReplacePermissions(ctx context.Context, role *domain.Role, permissions []*domain.Permission) error
	SoftDelete(ctx context.Context, roleID string) error
	Restore(ctx context.Context, roleID string) error
	HardDelete(ctx context.Context, roleID string) error
}

type PermissionResolver interface {
	FindMany(ctx context.Context, filter *domain.PermissionFilter, option *domain.FindManyOption) ([]*domain.Permission, error)
}

type roleUsecase struct {
	repo        RoleRepository
	permissions PermissionResolver
	recorder    domain.ActivityRecorder
	tx          domain.TxManager
}

func NewRoleUsecase(
	repo RoleRepository,
	permissions PermissionResolver,
	recorder domain.ActivityRecorder,
	tx domain.TxManager,

) domain.RoleUsecase {
	return &roleUsecase{
		repo:        repo,
		permissions: permissions,
		recorder:    recorder,
		tx:          tx,
	}
}

func (u *roleUsecase) List(ctx context.Context, query *domain.ListQuery) ([]*domain.Role, *domain.Pagination, error) {
	query.Normalize(roleSortPolicy)

	filter := &domain.RoleFilter{}
	if query.Search != "" {
		filter.SearchTerm = &query.Search
	}

	return u.repo.FindPage(ctx, filter, query.PageOption(roleSortPolicy))
}

func (u *roleUsecase) ListTrashed(ctx context.Context) ([]*domain.Role, error) {
	return u.repo.FindMany(ctx, &domain.RoleFilter{OnlyDeleted: true}, &domain.FindManyOption{
		Sort: []string{"deleted_at desc"},
	})
}

func (u *roleUsecase) Create(ctx context.Context, req *domain.RoleCreateRequest) (*domain.Role, error) {
	if err := u.checkNameUnique(ctx, req.Name, nil); err != nil {
		return nil, err
	}

	role := &domain.Role{
		Name:        req.Name,
		Description: req.Description,
		Status:      true,
	}

	err := u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Create(ctx, role); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventCreated,
			SubjectType: domain.RoleSubjectType,
			SubjectID:   role.ID,
			New:         role.AuditAttributes(),
			AllowList:   domain.RoleAuditFields,
		})
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (u *roleUsecase) Update(ctx context.Context, roleID string, req *domain.RoleUpdateRequest) (*domain.Role, error) {
	role, err := u.findLive(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if err := u.checkNameUnique(ctx, req.Name, &roleID); err != nil {
		return nil, err
	}

	oldAttrs := role.AuditAttributes()

	role.Name = req.Name
	role.Description = req.Description

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Update(ctx, role); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventUpdated,
			SubjectType: domain.RoleSubjectType,
			SubjectID:   role.ID,
			Old:         oldAttrs,
			New:         role.AuditAttributes(),
			AllowList:   domain.RoleAuditFields,
		})
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

// AssignPermissions resolves the requested ids against existing live
// permissions and replaces the role's set with exactly the resolved subset.
// Unknown ids drop silently; the request must carry at least one id.
func (u *roleUsecase) AssignPermissions(ctx context.Context, roleID string, req *domain.AssignPermissionsRequest) (*domain.Role, error) {
	role, err := u.findLive(ctx, roleID)
	if err != nil {
		return nil, err
	}

	resolved, err := u.permissions.FindMany(ctx, &domain.PermissionFilter{
		IDIn: req.PermissionIDs,
	}, nil)
	if err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		return u.repo.ReplacePermissions(ctx, role, resolved)
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (u *roleUsecase) ToggleStatus(ctx context.Context, roleID string) (*domain.Role, error) {
	role, err := u.findLive(ctx, roleID)
	if err != nil {
		return nil, err
	}

	oldAttrs := role.AuditAttributes()
	role.Status = !role.Status

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Update(ctx, role); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventUpdated,
			SubjectType: domain.RoleSubjectType,
			SubjectID:   role.ID,
			Old:         oldAttrs,
			New:         role.AuditAttributes(),
			AllowList:   domain.RoleAuditFields,
		})
	})
	if err != nil {
		return nil, err
	}
	return role, nil
}

func (u *roleUsecase) Delete(ctx context.Context, roleID string) error {
	role, err := u.findLive(ctx, roleID)
	if err != nil {
		return err
	}

	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.SoftDelete(ctx, role.ID); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventDeleted,
			SubjectType: domain.RoleSubjectType,
			SubjectID:   role.ID,
			Old:         role.AuditAttributes(),
			AllowList:   domain.RoleAuditFields,
		})
	})
}

func (u *roleUsecase) Restore(ctx context.Context, roleID string) (*domain.Role, error) {
	role, err := u.findTrashed(ctx, roleID)
	if err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := u.repo.Restore(ctx, role.ID); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventRestored,
			SubjectType: domain.RoleSubjectType,
			SubjectID:   role.ID,
			New:         role.AuditAttributes(),
			AllowList:   domain.RoleAuditFields,
		})
	})
	if err != nil {
		return nil, err
	}
	role.DeletedAt = 0
	return role, nil
}

func (u *roleUsecase) ForceDelete(ctx context.Context, roleID string) error {
	role, err := u.findTrashed(ctx, roleID)
	if err != nil {
		return err
	}

	return u.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		// detach the association first so no orphan rows remain
		if err := u.repo.ReplacePermissions(ctx, role, nil); err != nil {
			return err
		}
		if err := u.repo.HardDelete(ctx, role.ID); err != nil {
			return err
		}
		return u.recorder.Record(ctx, &domain.ActivityEntry{
			Event:       domain.EventForceDelete,
			SubjectType: domain.RoleSubjectType,
			SubjectID:   role.ID,
			Old:         role.AuditAttributes(),
			AllowList:   domain.RoleAuditFields,
		})
	})
}

// checkNameUnique counts soft-deleted rows as conflicts, mirroring the
// permission policy: a trashed role keeps its name reserved.
func (u *roleUsecase) checkNameUnique(ctx context.Context, name string, excludeID *string) error {
	filter := &domain.RoleFilter{
		NameEq:         &name,
		IncludeDeleted: true,
	}
	if excludeID != nil {
		filter.IDNe = excludeID
	}

	existing, err := u.repo.FindOne(ctx, filter, nil)
	if err != nil && !errors.Is(err, domain.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return domain.UniqueConflict("name", name)
	}
	return nil
}

func (u *roleUsecase) findLive(ctx context.Context, roleID string) (*domain.Role, error) {
	role, err := u.repo.FindOne(ctx, &domain.RoleFilter{ID: &roleID}, &domain.FindOneOption{
		Preloads: []string{"Permissions"},
	})
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, err
	}
	return role, nil
}

func (u *roleUsecase) findTrashed(ctx context.Context, roleID string) (*domain.Role, error) {
	role, err := u.repo.FindOne(ctx, &domain.RoleFilter{ID: &roleID, OnlyDeleted: true}, nil)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, domain.ErrRoleNotTrashed
		}
		return nil, err
	}
	return role, nil
}
