// Package java holds general-purpose recipes for Java-like trees. They are
// usable on their own and as follow-ups scheduled by framework recipes.
package java
