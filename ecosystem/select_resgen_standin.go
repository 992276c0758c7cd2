//go:build resgen_standin

package ecosystem

func init() { register(Standin) }
