//go:build !windows && !linux

package wallpaper

func activate(string) error {
	return ErrUnsupported
}
