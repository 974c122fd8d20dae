// Package desktop installs the EPUB thumbnailer hook for GNOME file managers.
package desktop

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

var (
	ErrGNOMENotFound       = errors.New("desktop: gnome-version.xml not found")
	ErrUnsupportedPlatform = errors.New("desktop: unsupported GNOME platform")
	ErrNotRegistered       = errors.New("desktop: thumbnailer is not registered")
)

// GNOMEVersion holds the fields of /usr/share/gnome/gnome-version.xml.
type GNOMEVersion struct {
	Platform    string `xml:"platform"`
	Minor       string `xml:"minor"`
	Micro       string `xml:"micro"`
	Distributor string `xml:"distributor"`
	Date        string `xml:"date"`
}

// ReadGNOMEVersion parses the GNOME version file at path.
func ReadGNOMEVersion(path string) (*GNOMEVersion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrGNOMENotFound, path)
		}
		return nil, err
	}

	var v GNOMEVersion
	if err := xml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &v, nil
}

// PlatformMajor returns the platform number as an integer.
func (v *GNOMEVersion) PlatformMajor() (int, error) {
	return strconv.Atoi(strings.TrimSpace(v.Platform))
}

func (v *GNOMEVersion) String() string {
	return fmt.Sprintf("GNOME %s.%s.%s (%s)", v.Platform, v.Minor, v.Micro, v.Distributor)
}

// RequireGNOME3 checks that the installed GNOME uses the
// /usr/share/thumbnailers hook layout, introduced with GNOME 3.
func RequireGNOME3(path string) (*GNOMEVersion, error) {
	v, err := ReadGNOMEVersion(path)
	if err != nil {
		return nil, err
	}
	major, err := v.PlatformMajor()
	if err != nil || major < 3 {
		return v, fmt.Errorf("%w: platform %q", ErrUnsupportedPlatform, v.Platform)
	}
	return v, nil
}
