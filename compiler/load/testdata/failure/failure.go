//go:build resgen

package failure

//resgen:group
func NotAStruct() {}

//resgen:group some_mode
type BadMode struct {
	Pin PA2
}
