package compliance

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	domaincompliance "inspectra/internal/domain/compliance"
	"inspectra/internal/errs"
	"inspectra/internal/ports"
)

type templateSeedFile struct {
	Templates []templateSeed `yaml:"templates"`
}

type templateSeed struct {
	Code           string         `yaml:"code"`
	InspectionType string         `yaml:"inspection_type"`
	Items          []templateItem `yaml:"items"`
}

type templateItem struct {
	Category    string `yaml:"category"`
	Requirement string `yaml:"requirement"`
	Mandatory   bool   `yaml:"mandatory"`
	Points      int    `yaml:"points"`
}

// SeedTemplates loads checklist templates from a YAML file. Each template
// becomes a new version; the previously active version of the same
// inspection type is archived, so inspections already pinned to it keep
// scoring against the items they were scheduled with.
func (s *Service) SeedTemplates(ctx context.Context, path string, actor string) ([]ports.ChecklistTemplate, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	actor, err := requireActor(actor)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrapf(err, "read template file %s", path)
	}
	var seedFile templateSeedFile
	if err := yaml.Unmarshal(raw, &seedFile); err != nil {
		return nil, errs.Wrapf(err, "parse template file %s", path)
	}
	if len(seedFile.Templates) == 0 {
		return nil, fmt.Errorf("template file %s defines no templates", path)
	}
	for _, seed := range seedFile.Templates {
		if err := seed.validate(); err != nil {
			return nil, err
		}
	}

	now := s.nowString()

	var created []ports.ChecklistTemplate
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		for _, seed := range seedFile.Templates {
			version := 1
			active, err := s.repo.GetActiveTemplate(txCtx, seed.InspectionType)
			switch {
			case err == nil:
				version = active.Version + 1
				if err := s.repo.ArchiveTemplate(txCtx, active.TemplateID); err != nil {
					return err
				}
			case errors.Is(err, domaincompliance.ErrNotFound):
			default:
				return err
			}

			items := make([]ports.ChecklistItem, 0, len(seed.Items))
			for order, item := range seed.Items {
				items = append(items, ports.ChecklistItem{
					Category:    strings.TrimSpace(item.Category),
					Requirement: strings.TrimSpace(item.Requirement),
					Mandatory:   item.Mandatory,
					Points:      item.Points,
					SortOrder:   order + 1,
				})
			}

			template, err := s.repo.CreateTemplateVersion(txCtx, ports.ChecklistTemplate{
				Code:           strings.TrimSpace(seed.Code),
				InspectionType: strings.TrimSpace(seed.InspectionType),
				Version:        version,
				Status:         "active",
				CreatedAt:      now,
			}, items)
			if err != nil {
				return err
			}
			created = append(created, template)

			if err := s.appendAuditTx(txCtx, "template", template.Code, "seeded", actor,
				fmt.Sprintf("version %d, %d items", template.Version, len(items))); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return created, nil
}

func (seed templateSeed) validate() error {
	if strings.TrimSpace(seed.Code) == "" {
		return errors.New("template code is required")
	}
	if strings.TrimSpace(seed.InspectionType) == "" {
		return fmt.Errorf("template %s: inspection type is required", seed.Code)
	}
	if len(seed.Items) == 0 {
		return fmt.Errorf("template %s: at least one checklist item is required", seed.Code)
	}
	for index, item := range seed.Items {
		if strings.TrimSpace(item.Requirement) == "" {
			return fmt.Errorf("template %s item %d: requirement is required", seed.Code, index+1)
		}
		if item.Points <= 0 {
			return fmt.Errorf("template %s item %d: points must be positive", seed.Code, index+1)
		}
	}
	return nil
}
