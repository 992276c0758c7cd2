//go:build resgen

package buildflags

//resgen:group
type ButtonResources struct {
	Btn PC13
}
