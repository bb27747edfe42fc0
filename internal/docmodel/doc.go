// Package docmodel loads the on-disk building blocks of a site: content files
// (front-matter plus Markdown body) and the folder.yml / page.yml directory
// configuration files. All reads go through a billy filesystem.
//
// Parse problems never abort a build. Loaders return a usable zero value together
// with a warning-severity classified error that callers log and count.
package docmodel
