// Package projects discovers the candidate project directories that sit next to the
// clean-my-branch checkout.
package projects
