package manifest

// BaseManifest contains fields shared by all descriptor types.
type BaseManifest struct {
	Name      string   `yaml:"name" json:"name"`
	Type      string   `yaml:"type" json:"type"`
	Version   string   `yaml:"version" json:"version"`
	Title     string   `yaml:"title,omitempty" json:"title,omitempty"`
	ShortDesc string   `yaml:"shortdesc,omitempty" json:"shortdesc,omitempty"`
	LongDesc  string   `yaml:"longdesc,omitempty" json:"longdesc,omitempty"`
	Vendor    string   `yaml:"vendor,omitempty" json:"vendor,omitempty"`
	URL       string   `yaml:"url,omitempty" json:"url,omitempty"`
	UUID      string   `yaml:"uuid,omitempty" json:"uuid,omitempty"`
	Deps      []string `yaml:"deps,omitempty" json:"deps,omitempty"`
}

// PackageManifest represents a package descriptor.
type PackageManifest struct {
	BaseManifest  `yaml:",inline"`
	Files         []string            `yaml:"files,omitempty" json:"files,omitempty"`
	PlatformFiles map[string][]string `yaml:"platform_files,omitempty" json:"platform_files,omitempty"`
}

// MetaPackageManifest represents a metapackage descriptor.
type MetaPackageManifest struct {
	BaseManifest `yaml:",inline"`
	Packages     []PackageRef      `yaml:"packages" json:"packages"`
	InstallDir   map[string]string `yaml:"install_dir,omitempty" json:"install_dir,omitempty"`
}

// PackageRef names a package composed by a metapackage. Required packages
// cannot be deselected by the user; selected packages are installed by default.
type PackageRef struct {
	Name     string `yaml:"name" json:"name"`
	Required bool   `yaml:"required,omitempty" json:"required,omitempty"`
	Selected bool   `yaml:"selected,omitempty" json:"selected,omitempty"`
}

// Descriptor type constants for the type discriminator field.
const (
	TypePackage     = "package"
	TypeMetaPackage = "metapackage"
)

// ValidTypes contains all valid descriptor type values.
var ValidTypes = []string{
	TypePackage,
	TypeMetaPackage,
}

// IsValidType reports whether t is a known descriptor type.
func IsValidType(t string) bool {
	for _, v := range ValidTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Extension is the file extension that marks a descriptor file.
const Extension = ".package"
