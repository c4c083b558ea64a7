package seed

import (
	"fmt"
	"log"

	"github.com/blaisecz/bedtime-advisor/internal/domain"
	"github.com/blaisecz/bedtime-advisor/internal/model"
	"gorm.io/gorm"
)

// Models returns the coefficient sets written by Run. The first one is the built-in
// default and is seeded as the active version.
func Models() []domain.RegressionModel {
	def := model.DefaultArtifact()
	return []domain.RegressionModel{
		{
			Name:            def.Name,
			Version:         def.Version,
			Intercept:       def.Intercept,
			WakeSecondsCoef: def.Coefficients.WakeSeconds,
			SleepGoalCoef:   def.Coefficients.SleepGoalHours,
			CaffeineCoef:    def.Coefficients.CaffeineCups,
			Active:          true,
		},
		{
			// Heavier caffeine penalty, kept inactive for comparison.
			Name:            def.Name,
			Version:         def.Version + 1,
			Intercept:       -0.25,
			WakeSecondsCoef: def.Coefficients.WakeSeconds,
			SleepGoalCoef:   def.Coefficients.SleepGoalHours,
			CaffeineCoef:    0.15,
		},
	}
}

// Run seeds the model registry. Safe to call multiple times; existing
// (name, version) rows are left untouched.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.RegressionModel{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	for _, m := range Models() {
		m := m
		err := db.Where("name = ? AND version = ?", m.Name, m.Version).FirstOrCreate(&m).Error
		if err != nil {
			return fmt.Errorf("failed to seed %s@%d: %w", m.Name, m.Version, err)
		}
		log.Printf("Model %s ready (active=%v)", m.VersionLabel(), m.Active)
	}

	log.Println("Seed completed")
	return nil
}
