package build

// Tag is set at build time: -ldflags "-X clipscope/pkg/build.Tag=v1.2.3"
var Tag = "dev"
