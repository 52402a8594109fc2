package usecase

import (
	"context"

	"github.com/phenrril/brainbattle/internal/domain"
)

type MissionDetail struct {
	Mission domain.Mission
	Kits    []domain.Product
}

type MissionUC struct {
	Content domain.ContentLookup
	Catalog *CatalogUC
}

func (uc *MissionUC) List() []domain.Mission {
	return uc.Content.Missions()
}

// Detail returns the mission with the kits tagged for it, or
// domain.ErrNotFound for an unknown slug.
func (uc *MissionUC) Detail(ctx context.Context, slug string) (*MissionDetail, error) {
	m, ok := uc.Content.Mission(slug)
	if !ok {
		return nil, domain.ErrNotFound
	}
	kits, err := uc.Catalog.Kits(ctx)
	if err != nil {
		return nil, err
	}
	d := &MissionDetail{Mission: m, Kits: []domain.Product{}}
	for _, k := range kits {
		if k.HasMission(slug) {
			d.Kits = append(d.Kits, k)
		}
	}
	return d, nil
}
