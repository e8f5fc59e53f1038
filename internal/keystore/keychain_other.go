//go:build !darwin

package keystore

func platformStore() Store {
	return NewFileStore("")
}
