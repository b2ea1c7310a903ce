//go:build !darwin || ios

package cv

func platformRuntime() Runtime {
	return nil
}
