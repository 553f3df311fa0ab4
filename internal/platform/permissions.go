package platform

import (
	"context"
	"fmt"
	"sync"

	"github.com/shenikar/estate_tracker/internal/models"
)

// StaticPermissions отвечает на запросы разрешений по заранее выданному списку.
// Выдачу можно менять во время работы через Set.
type StaticPermissions struct {
	mu      sync.RWMutex
	granted map[models.Permission]bool
}

func NewStaticPermissions(granted []models.Permission) *StaticPermissions {
	p := &StaticPermissions{granted: make(map[models.Permission]bool, len(models.PermissionOrder))}
	for _, perm := range models.PermissionOrder {
		p.granted[perm] = false
	}
	for _, perm := range granted {
		if _, ok := p.granted[perm]; ok {
			p.granted[perm] = true
		}
	}
	return p
}

// Request возвращает текущее решение по разрешению
func (p *StaticPermissions) Request(ctx context.Context, permission models.Permission) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	granted, ok := p.granted[permission]
	if !ok {
		return false, fmt.Errorf("unknown permission %q", permission)
	}
	return granted, nil
}

// Set выдает или отзывает разрешение
func (p *StaticPermissions) Set(permission models.Permission, granted bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.granted[permission]; !ok {
		return fmt.Errorf("unknown permission %q", permission)
	}
	p.granted[permission] = granted
	return nil
}

// Snapshot возвращает копию текущей выдачи
func (p *StaticPermissions) Snapshot() map[models.Permission]bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[models.Permission]bool, len(p.granted))
	for k, v := range p.granted {
		out[k] = v
	}
	return out
}

// LocationGranted - true, пока выданы оба разрешения на местоположение
func (p *StaticPermissions) LocationGranted() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.granted[models.PermissionFineLocation] && p.granted[models.PermissionCoarseLocation]
}
