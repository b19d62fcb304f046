package ports

// LicenseReader reads the text of a license file.
type LicenseReader interface {
	ReadLicense(path string) (string, error)
}
