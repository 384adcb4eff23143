package services

import (
	"errors"
	"testing"
)

func TestValidateProject(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Project)
		wantErr bool
	}{
		{"valid", func(p *Project) {}, false},
		{"negative quantity allowed", func(p *Project) { p.Items[0].Quantity = -1 }, false},
		{"missing project id", func(p *Project) { p.ID = "" }, true},
		{"missing item id", func(p *Project) { p.Items[0].ID = "" }, true},
		{"unknown charge type", func(p *Project) { p.PeriodCharges[0].Type = "percent" }, true},
		{"missing charge id", func(p *Project) { p.PeriodCharges[0].ID = "" }, true},
		{"missing subcontract id", func(p *Project) { p.Subcontracts[0].ID = "" }, true},
		{"negative tax rate", func(p *Project) { p.TaxRate = -0.05 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := sampleProject()
			tt.mutate(&p)
			err := ValidateProject(p)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidProject) {
					t.Errorf("expected ErrInvalidProject, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
