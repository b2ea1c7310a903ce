//go:build !darwin

package cf

func platformRuntime() Runtime {
	return nil
}
