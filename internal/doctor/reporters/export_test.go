package reporters

var (
	ResultRow         = resultRow
	ResultColumnWidth = resultColumnWidth
	ShortenPath       = shortenPath
	DimBorders        = dimBorders
)

// SetHomeDir overrides the home directory used by shortenPath.
func SetHomeDir(dir string) {
	homeDir = dir
}
