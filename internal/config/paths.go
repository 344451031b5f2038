package config

import (
	"fmt"
	"os"
	"path/filepath"

	"h2resconv/internal/errors"
)

// Well-known dataset file names. Resource files are parametrized by
// the cluster-count suffix; data-directory files are fixed.
const (
	electricityDemandFile = "electricity_demand.csv"
	hydroProfileFile      = "profile_hydro.nc"
)

// ResourcePath returns the path of a file in the resource directory.
func (c *Config) ResourcePath(name string) string {
	return filepath.Join(c.Source.ResourceDir, name)
}

// DataPath returns the path of a file in the local data directory.
func (c *Config) DataPath(name string) string {
	return filepath.Join(c.Source.DataDir, name)
}

// ExportPath returns the path of a file in the export directory.
func (c *Config) ExportPath(name string) string {
	return filepath.Join(c.Export.Dir, name)
}

// ElectricityDemandPath returns the wide-format demand CSV.
func (c *Config) ElectricityDemandPath() string {
	return c.ResourcePath(electricityDemandFile)
}

// CopProfilesPath returns the COP profile grid for a planning year.
func (c *Config) CopProfilesPath(year string) string {
	return c.ResourcePath(fmt.Sprintf("cop_profiles_base_s_%s_%s.nc", c.Source.Clusters, year))
}

// HeatDemandPath returns the hourly heat demand grid.
func (c *Config) HeatDemandPath() string {
	return c.ResourcePath(fmt.Sprintf("hourly_heat_demand_total_base_s_%s.nc", c.Source.Clusters))
}

// AvailabilityMatrixPath returns the availability matrix for one
// renewable technology, "offwind-ac" through "solar-hsat".
func (c *Config) AvailabilityMatrixPath(tech string) string {
	return c.ResourcePath(fmt.Sprintf("availability_matrix_%s_%s.nc", c.Source.Clusters, tech))
}

// HydroProfilePath returns the hydro inflow profile grid.
func (c *Config) HydroProfilePath() string {
	return c.ResourcePath(hydroProfileFile)
}

// EnsureExportDir creates the export directory when missing.
func (c *Config) EnsureExportDir() error {
	if err := os.MkdirAll(c.Export.Dir, 0755); err != nil {
		return errors.NewStorageError("failed to create export directory", err).
			WithContext("path", c.Export.Dir)
	}
	return nil
}
