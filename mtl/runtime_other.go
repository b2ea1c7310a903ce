//go:build !darwin

package mtl

func platformRuntime() Runtime {
	return nil
}
