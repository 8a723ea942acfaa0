// Package services implements the fetch-and-assemble pipeline: the
// concurrent tree walker and the document builder that stitches README,
// tree text and file contents into one artifact.
package services
