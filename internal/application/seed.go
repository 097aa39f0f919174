package application

import (
	"context"
	"strings"

	"github.com/oksasatya/go-user-admin/internal/domain/entity"
	"github.com/oksasatya/go-user-admin/internal/domain/repository"
)

// EnsureRoles adds every name not yet present (compared case-insensitively)
// and returns the names it created.
func EnsureRoles(ctx context.Context, roles repository.RoleRepository, names []string) ([]string, error) {
	existing, err := roles.List(ctx)
	if err != nil {
		return nil, err
	}
	have := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		have[strings.ToLower(strings.TrimSpace(r.Name))] = struct{}{}
	}

	var created []string
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := have[key]; ok {
			continue
		}
		if _, err := roles.Add(ctx, &entity.Role{Name: strings.TrimSpace(name)}); err != nil {
			return created, err
		}
		have[key] = struct{}{}
		created = append(created, name)
	}
	return created, nil
}
