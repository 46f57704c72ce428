//go:build !darwin
// +build !darwin

package cli

func OSSpecificInit() {
}
