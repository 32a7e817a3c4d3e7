package common

import "os/user"

// IsRunningAsRoot reports whether the process can map the GPIO registers.
func IsRunningAsRoot() bool {
	usr, err := user.Current()
	return err == nil && usr.Uid == "0"
}
