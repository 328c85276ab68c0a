// Package rules holds the vibewolf rule catalog. Rules are grouped by theme
// (XSS, secrets, injection, crypto, misconfiguration), compiled once into an
// ordered RuleSet, and narrowed per scan by Filter.
package rules
