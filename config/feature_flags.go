package config

import (
	"hash/fnv"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// FeatureFlags manages feature toggles for the admin dashboard.
// Supports gradual rollout per administrator account, grade targeting
// and time-based activation windows.
type FeatureFlags struct {
	mu sync.RWMutex

	// Core features
	features map[string]*Feature

	// Override rules (for testing/debugging)
	adminOverrides map[int64]map[string]bool // adminID -> feature -> enabled
}

// Feature represents a single feature flag.
type Feature struct {
	Name        string
	Description string
	Enabled     bool

	// Rollout percentage (0-100)
	// Administrators are assigned based on hash of their ID
	RolloutPercent int

	// Grade targeting. Empty means all grades.
	TargetGrades []int

	// Time-based activation
	EnabledFrom  *time.Time
	EnabledUntil *time.Time
}

// FeatureContext provides context for feature flag evaluation.
type FeatureContext struct {
	AdminID int64 // administrator account ID

	Grade   int  // grade the admin is working with, 0 if none
	IsSuper bool // super-admin account
}

// Predefined feature flag names.
const (
	// === Report Features ===
	FeatureReportsAIGeneration = "reports.ai_generation" // AI student reports
	FeatureReportsHistory      = "reports.history"       // keep last report per student

	// === Dashboard Features ===
	FeatureDashboardUpcomingEvents   = "dashboard.upcoming_events"   // upcoming events widget
	FeatureDashboardPerformanceChart = "dashboard.performance_chart" // distribution chart

	// === Attendance Features ===
	FeatureAttendanceCorrections = "attendance.corrections" // re-mark past days

	// === Persistence Features ===
	FeatureSnapshotAutoFlush = "snapshot.auto_flush" // periodic full snapshot rewrite

	// === Experimental Features ===
	FeatureExperimentalBulkImport = "experimental.bulk_import" // CSV student import
)

// LoadFeatureFlags loads feature flags from environment variables.
func LoadFeatureFlags() *FeatureFlags {
	ff := &FeatureFlags{
		features:       make(map[string]*Feature),
		adminOverrides: make(map[int64]map[string]bool),
	}

	ff.initializeDefaults()
	ff.loadFromEnvironment()

	return ff
}

// initializeDefaults sets up all features with default values.
func (ff *FeatureFlags) initializeDefaults() {
	ff.features[FeatureReportsAIGeneration] = &Feature{
		Name:           FeatureReportsAIGeneration,
		Description:    "Generate student reports via the text generation API",
		Enabled:        true,
		RolloutPercent: 100,
	}

	ff.features[FeatureReportsHistory] = &Feature{
		Name:           FeatureReportsHistory,
		Description:    "Keep the last generated report per student",
		Enabled:        true,
		RolloutPercent: 100,
	}

	ff.features[FeatureDashboardUpcomingEvents] = &Feature{
		Name:           FeatureDashboardUpcomingEvents,
		Description:    "Upcoming events widget on the dashboard",
		Enabled:        true,
		RolloutPercent: 100,
	}

	ff.features[FeatureDashboardPerformanceChart] = &Feature{
		Name:           FeatureDashboardPerformanceChart,
		Description:    "Performance distribution chart on the dashboard",
		Enabled:        true,
		RolloutPercent: 100,
	}

	ff.features[FeatureAttendanceCorrections] = &Feature{
		Name:           FeatureAttendanceCorrections,
		Description:    "Allow re-marking attendance for past days",
		Enabled:        true,
		RolloutPercent: 100,
	}

	ff.features[FeatureSnapshotAutoFlush] = &Feature{
		Name:           FeatureSnapshotAutoFlush,
		Description:    "Periodic full snapshot rewrite in the background",
		Enabled:        true,
		RolloutPercent: 100,
	}

	ff.features[FeatureExperimentalBulkImport] = &Feature{
		Name:           FeatureExperimentalBulkImport,
		Description:    "Bulk student import from CSV",
		Enabled:        false,
		RolloutPercent: 0,
	}
}

// loadFromEnvironment loads feature flag overrides from env vars.
// Format: FEATURE_<NAME>=true|false|<percent>
// Example: FEATURE_REPORTS_AI_GENERATION=false
// Example: FEATURE_EXPERIMENTAL_BULK_IMPORT=25 (25% rollout)
func (ff *FeatureFlags) loadFromEnvironment() {
	for name, feature := range ff.features {
		envKey := featureNameToEnvKey(name)
		if val := os.Getenv(envKey); val != "" {
			// Try parsing as boolean
			if b, err := strconv.ParseBool(val); err == nil {
				feature.Enabled = b
				if b {
					feature.RolloutPercent = 100
				} else {
					feature.RolloutPercent = 0
				}
				continue
			}

			// Try parsing as percentage
			if p, err := strconv.Atoi(val); err == nil && p >= 0 && p <= 100 {
				feature.Enabled = p > 0
				feature.RolloutPercent = p
			}
		}
	}
}

// featureNameToEnvKey converts feature name to environment variable key.
// "reports.ai_generation" -> "FEATURE_REPORTS_AI_GENERATION"
func featureNameToEnvKey(name string) string {
	key := strings.ToUpper(name)
	key = strings.ReplaceAll(key, ".", "_")
	return "FEATURE_" + key
}

// IsEnabled checks if a feature is enabled for the given context.
func (ff *FeatureFlags) IsEnabled(featureName string, ctx *FeatureContext) bool {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	// Check admin overrides first
	if ctx != nil && ctx.AdminID != 0 {
		if overrides, ok := ff.adminOverrides[ctx.AdminID]; ok {
			if enabled, ok := overrides[featureName]; ok {
				return enabled
			}
		}
	}

	feature, ok := ff.features[featureName]
	if !ok {
		return false
	}

	// Super admins get all features
	if ctx != nil && ctx.IsSuper {
		return true
	}

	if !feature.Enabled {
		return false
	}

	// Check time-based activation
	now := time.Now()
	if feature.EnabledFrom != nil && now.Before(*feature.EnabledFrom) {
		return false
	}
	if feature.EnabledUntil != nil && now.After(*feature.EnabledUntil) {
		return false
	}

	// Check grade targeting
	if len(feature.TargetGrades) > 0 && ctx != nil && ctx.Grade != 0 {
		gradeMatch := false
		for _, g := range feature.TargetGrades {
			if g == ctx.Grade {
				gradeMatch = true
				break
			}
		}
		if !gradeMatch {
			return false
		}
	}

	// Check rollout percentage
	if feature.RolloutPercent < 100 && ctx != nil && ctx.AdminID != 0 {
		return ff.isInRollout(ctx.AdminID, featureName, feature.RolloutPercent)
	}

	return feature.RolloutPercent > 0
}

// isInRollout determines if an admin is in the rollout percentage.
// Uses consistent hashing so admins stay in their bucket.
func (ff *FeatureFlags) isInRollout(adminID int64, featureName string, percent int) bool {
	h := fnv.New32a()
	h.Write([]byte(featureName))
	h.Write([]byte(strconv.FormatInt(adminID, 10)))
	hash := h.Sum32()

	// Map to 0-99 range
	bucket := int(hash % 100)

	return bucket < percent
}

// SetAdminOverride sets a feature override for a specific admin.
// Useful for testing and debugging.
func (ff *FeatureFlags) SetAdminOverride(adminID int64, featureName string, enabled bool) {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	if _, ok := ff.adminOverrides[adminID]; !ok {
		ff.adminOverrides[adminID] = make(map[string]bool)
	}
	ff.adminOverrides[adminID][featureName] = enabled
}

// ClearAdminOverrides removes all overrides for an admin.
func (ff *FeatureFlags) ClearAdminOverrides(adminID int64) {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	delete(ff.adminOverrides, adminID)
}

// SetRolloutPercent updates the rollout percentage for a feature.
// Thread-safe for live updates.
func (ff *FeatureFlags) SetRolloutPercent(featureName string, percent int) error {
	ff.mu.Lock()
	defer ff.mu.Unlock()

	feature, ok := ff.features[featureName]
	if !ok {
		return ErrFeatureNotFound
	}

	if percent < 0 || percent > 100 {
		return ErrInvalidRolloutPercent
	}

	feature.RolloutPercent = percent
	feature.Enabled = percent > 0

	return nil
}

// EnableFeature enables a feature at 100% rollout.
func (ff *FeatureFlags) EnableFeature(featureName string) error {
	return ff.SetRolloutPercent(featureName, 100)
}

// DisableFeature disables a feature completely.
func (ff *FeatureFlags) DisableFeature(featureName string) error {
	return ff.SetRolloutPercent(featureName, 0)
}

// GetAllFeatures returns a copy of all feature configurations.
func (ff *FeatureFlags) GetAllFeatures() map[string]*Feature {
	ff.mu.RLock()
	defer ff.mu.RUnlock()

	result := make(map[string]*Feature, len(ff.features))
	for k, v := range ff.features {
		featureCopy := *v
		result[k] = &featureCopy
	}
	return result
}

// --- Errors ---

var (
	ErrFeatureNotFound       = &FeatureFlagError{Message: "feature not found"}
	ErrInvalidRolloutPercent = &FeatureFlagError{Message: "rollout percent must be 0-100"}
)

// FeatureFlagError represents a feature flag error.
type FeatureFlagError struct {
	Message string
}

func (e *FeatureFlagError) Error() string {
	return e.Message
}
