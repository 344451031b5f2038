// Package sourcefile opens and parses flat source datasets: transparent
// decompression by extension (gzip, zstd) and the wide-format hourly
// CSV layout used for electricity demand.
package sourcefile
