package spring

import "github.com/Sumatoshi-tech/codemod/pkg/recipes/java"

// IncludeStacktraceFQN is the enum whose constants Spring Boot 2.3 renamed.
const IncludeStacktraceFQN = "org.springframework.boot.autoconfigure.web.ErrorProperties.IncludeStacktrace"

// MigrateErrorPropertiesIncludeStackTraceConstants renames
// ErrorProperties.IncludeStacktrace.ON_TRACE_PARAM to ON_PARAM.
type MigrateErrorPropertiesIncludeStackTraceConstants struct {
	java.RenameConstant
}

// NewMigrateErrorPropertiesIncludeStackTraceConstants returns the recipe.
func NewMigrateErrorPropertiesIncludeStackTraceConstants() *MigrateErrorPropertiesIncludeStackTraceConstants {
	return &MigrateErrorPropertiesIncludeStackTraceConstants{
		RenameConstant: java.RenameConstant{
			DeclaringType: IncludeStacktraceFQN,
			Renames:       map[string]string{"ON_TRACE_PARAM": "ON_PARAM"},
		},
	}
}

// Name implements rewrite.Recipe.
func (r *MigrateErrorPropertiesIncludeStackTraceConstants) Name() string {
	return "spring.boot2.MigrateErrorPropertiesIncludeStackTraceConstants"
}

// Description implements rewrite.Recipe.
func (r *MigrateErrorPropertiesIncludeStackTraceConstants) Description() string {
	return "Use ErrorProperties.IncludeStacktrace.ON_PARAM instead of the deprecated ON_TRACE_PARAM (Spring Boot 2.3)."
}
