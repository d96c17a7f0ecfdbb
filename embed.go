package mdblog

import "embed"

// EmbeddedAssets contains static assets shipped with mdblog: the default
// stylesheet served at /public/style.css and copied into static exports.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
