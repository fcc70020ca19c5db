// Package jsonfile reads incentive-plan datasets from JSON files.
//
// The file's root is an object keyed by company name. Each company may
// carry "setor", "controle_acionario", "fatos_extraidos" and
// "planos_identificados"; every one of them is optional. The decoder walks
// the document with encoding/json tokens so that company order and plan
// order follow the file, which a Go map cannot preserve.
//
// Only two conditions are errors: the file cannot be read (domain.ErrIO)
// and the root is not a JSON object (domain.ErrParse). Nested values of
// the wrong shape fall back to their defaults.
package jsonfile
