package lim

// Version is the interpreter release string reported by `lim version`.
var Version = "0.3.0"

// BuildDate may be overridden at link time (-ldflags "-X ...BuildDate=...").
var BuildDate = "dev"
