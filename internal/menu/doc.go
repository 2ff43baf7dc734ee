// Package menu builds custom menu trees from flat add calls or the custom-menu-items text format
// and serializes them into Bootstrap dropdown markup.
package menu
