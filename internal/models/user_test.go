package models

import "testing"

func TestUser_IsPro(t *testing.T) {
	tests := []struct {
		name     string
		planType string
		expected bool
	}{
		{"pro user", PlanPro, true},
		{"free user", PlanFree, false},
		{"empty plan", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := &User{PlanType: tt.planType}
			if got := user.IsPro(); got != tt.expected {
				t.Errorf("IsPro() = %v, want %v", got, tt.expected)
			}
		})
	}
}
