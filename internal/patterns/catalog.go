// Package patterns defines the ordered catalog of security detection rules
// applied to submitted content. Patterns are data, not code: each entry pairs
// a compiled regular expression with a severity, category, and description,
// and the scanner iterates the catalog without any per-pattern dispatch.
//
// Every expression is written for linear-time matching: bounded gaps
// (`.{0,K}`) instead of `.*`, non-capturing groups, and explicit character
// classes. Go's regexp package is RE2-based and cannot backtrack, so the
// catalog is structurally immune to catastrophic backtracking; the style
// rules keep worst-case scan cost proportional to content length anyway.
package patterns

import (
	"regexp"

	"github.com/contentvet/contentvet/internal/types"
)

// Detection categories. The scanner reports issues typed as
// "security_<category>".
const (
	CategoryPromptInjection     = "prompt_injection"
	CategoryRoleHijacking       = "role_hijacking"
	CategoryPrivilegeEscalation = "privilege_escalation"
	CategoryCommandExecution    = "command_execution"
	CategoryCodeExecution       = "code_execution"
	CategoryFileSystem          = "file_system"
	CategoryNetworkAccess       = "network_access"
	CategoryDataExfiltration    = "data_exfiltration"
	CategoryObfuscation         = "obfuscation"
	CategoryJailbreak           = "jailbreak"
	CategoryYAMLSecurity        = "yaml_security"
	CategoryContextAwareness    = "context_awareness"
	CategorySensitiveData       = "sensitive_data"
	CategoryResourceExhaustion  = "resource_exhaustion"
)

// Pattern is a single detection rule.
type Pattern struct {
	Name        string
	Regexp      *regexp.Regexp
	Severity    types.Severity
	Category    string
	Description string
}

// categoryPriority orders categories for the optimized scan: directly
// executable threats first, advisory noise last. Unlisted categories rank 0.
var categoryPriority = map[string]int{
	CategoryCommandExecution:    14,
	CategoryCodeExecution:       13,
	CategoryFileSystem:          12,
	CategoryPrivilegeEscalation: 11,
	CategoryDataExfiltration:    10,
	CategoryPromptInjection:     9,
	CategoryRoleHijacking:       8,
	CategoryNetworkAccess:       7,
	CategorySensitiveData:       6,
	CategoryYAMLSecurity:        5,
	CategoryJailbreak:           4,
	CategoryObfuscation:         3,
	CategoryContextAwareness:    2,
	CategoryResourceExhaustion:  1,
}

// CategoryPriority returns the scan-ordering rank for a category.
func CategoryPriority(category string) int {
	return categoryPriority[category]
}

// catalog is the ordered rule set. Order here is the baseline scan order;
// the optimized scanner re-sorts a copy by severity and category priority.
var catalog = []Pattern{
	// prompt_injection
	{
		Name:        "ignore_previous_instructions",
		Regexp:      regexp.MustCompile(`(?i)\bignore\s+(?:all\s+)?(?:previous|prior|above|earlier)\s+(?:instructions|prompts|directives|context)\b`),
		Severity:    types.SeverityCritical,
		Category:    CategoryPromptInjection,
		Description: "Attempts to override prior instructions",
	},
	{
		Name:        "disregard_system_prompt",
		Regexp:      regexp.MustCompile(`(?i)\bdisregard\s+.{0,30}\b(?:system\s+prompt|instructions|guidelines)\b`),
		Severity:    types.SeverityCritical,
		Category:    CategoryPromptInjection,
		Description: "Attempts to discard the system prompt",
	},
	{
		Name:        "forget_everything",
		Regexp:      regexp.MustCompile(`(?i)\bforget\s+(?:everything|all)\s+(?:you|above|before|prior)\b`),
		Severity:    types.SeverityHigh,
		Category:    CategoryPromptInjection,
		Description: "Attempts to reset conversation state",
	},
	{
		Name:        "inline_instruction_override",
		Regexp:      regexp.MustCompile(`(?i)\bnew\s+instructions?\s*:`),
		Severity:    types.SeverityHigh,
		Category:    CategoryPromptInjection,
		Description: "Injects replacement instructions mid-content",
	},

	// role_hijacking
	{
		Name:        "role_reassignment",
		Regexp:      regexp.MustCompile(`(?i)\byou\s+are\s+now\s+(?:a|an|the)\b`),
		Severity:    types.SeverityHigh,
		Category:    CategoryRoleHijacking,
		Description: "Reassigns the assistant role",
	},
	{
		Name:        "act_as_privileged",
		Regexp:      regexp.MustCompile(`(?i)\bact\s+as\s+(?:root|admin|administrator|system|superuser)\b`),
		Severity:    types.SeverityHigh,
		Category:    CategoryRoleHijacking,
		Description: "Requests a privileged persona",
	},
	{
		Name:        "pretend_identity",
		Regexp:      regexp.MustCompile(`(?i)\bpretend\s+(?:to\s+be|you\s+are)\b`),
		Severity:    types.SeverityMedium,
		Category:    CategoryRoleHijacking,
		Description: "Requests identity impersonation",
	},

	// privilege_escalation
	{
		Name:        "sudo_invocation",
		Regexp:      regexp.MustCompile(`(?i)\bsudo\s+[a-z/.]`),
		Severity:    types.SeverityHigh,
		Category:    CategoryPrivilegeEscalation,
		Description: "Invokes commands with elevated privileges",
	},
	{
		Name:        "setuid_chmod",
		Regexp:      regexp.MustCompile(`(?i)\bchmod\s+(?:u\+s|4[0-7]{3})\b`),
		Severity:    types.SeverityHigh,
		Category:    CategoryPrivilegeEscalation,
		Description: "Sets the setuid bit on a file",
	},
	{
		Name:        "grant_all_privileges",
		Regexp:      regexp.MustCompile(`(?i)\bgrant\s+all\s+privileges\b`),
		Severity:    types.SeverityHigh,
		Category:    CategoryPrivilegeEscalation,
		Description: "Grants unrestricted database privileges",
	},

	// command_execution
	{
		Name:        "shell_exec_call",
		Regexp:      regexp.MustCompile(`(?i)\b(?:system|popen|spawn|execve|execvp)\s{0,5}\(`),
		Severity:    types.SeverityCritical,
		Category:    CategoryCommandExecution,
		Description: "Direct shell execution call",
	},
	{
		Name:        "subprocess_shell",
		Regexp:      regexp.MustCompile(`(?i)\bsubprocess\.(?:run|call|check_output|Popen)\b`),
		Severity:    types.SeverityCritical,
		Category:    CategoryCommandExecution,
		Description: "Spawns a subprocess",
	},
	{
		Name:        "command_substitution",
		Regexp:      regexp.MustCompile(`\$\([^)]{1,80}\)`),
		Severity:    types.SeverityHigh,
		Category:    CategoryCommandExecution,
		Description: "Shell command substitution",
	},
	{
		Name:        "powershell_encoded",
		Regexp:      regexp.MustCompile(`(?i)\bpowershell\b.{0,40}-enc(?:odedcommand)?\b`),
		Severity:    types.SeverityCritical,
		Category:    CategoryCommandExecution,
		Description: "PowerShell with an encoded command payload",
	},

	// code_execution
	{
		Name:        "eval_call",
		Regexp:      regexp.MustCompile(`(?i)\beval\s{0,5}\(`),
		Severity:    types.SeverityCritical,
		Category:    CategoryCodeExecution,
		Description: "Dynamic code evaluation",
	},
	{
		Name:        "exec_call",
		Regexp:      regexp.MustCompile(`(?i)\bexec\s{0,5}\(`),
		Severity:    types.SeverityCritical,
		Category:    CategoryCodeExecution,
		Description: "Dynamic code execution",
	},
	{
		Name:        "dynamic_import",
		Regexp:      regexp.MustCompile(`\b__import__\s{0,5}\(`),
		Severity:    types.SeverityHigh,
		Category:    CategoryCodeExecution,
		Description: "Dynamic module import",
	},
	{
		Name:        "function_constructor",
		Regexp:      regexp.MustCompile(`\bnew\s+Function\s{0,5}\(`),
		Severity:    types.SeverityHigh,
		Category:    CategoryCodeExecution,
		Description: "JavaScript Function constructor",
	},

	// file_system
	{
		Name:        "destructive_rm",
		Regexp:      regexp.MustCompile(`(?i)\brm\s+-[a-z]{0,4}[rf]{2}[a-z]{0,4}\b`),
		Severity:    types.SeverityCritical,
		Category:    CategoryFileSystem,
		Description: "Recursive forced file deletion",
	},
	{
		Name:        "disk_format",
		Regexp:      regexp.MustCompile(`(?i)\b(?:mkfs|format)\s+(?:[a-z]:\\|/dev/)`),
		Severity:    types.SeverityCritical,
		Category:    CategoryFileSystem,
		Description: "Disk or partition formatting",
	},
	{
		Name:        "dd_device_write",
		Regexp:      regexp.MustCompile(`(?i)\bdd\s+if=.{0,40}\bof=/dev/`),
		Severity:    types.SeverityCritical,
		Category:    CategoryFileSystem,
		Description: "Raw write to a block device",
	},
	{
		Name:        "sensitive_system_file",
		Regexp:      regexp.MustCompile(`/etc/(?:passwd|shadow|sudoers)\b`),
		Severity:    types.SeverityHigh,
		Category:    CategoryFileSystem,
		Description: "References sensitive system files",
	},
	{
		Name:        "path_traversal_sequence",
		Regexp:      regexp.MustCompile(`(?:\.\./){2,}`),
		Severity:    types.SeverityHigh,
		Category:    CategoryFileSystem,
		Description: "Repeated parent-directory traversal",
	},

	// network_access
	{
		Name:        "download_pipe_shell",
		Regexp:      regexp.MustCompile(`(?i)\b(?:curl|wget)\b.{0,60}\|\s{0,5}(?:ba|z|da)?sh\b`),
		Severity:    types.SeverityCritical,
		Category:    CategoryNetworkAccess,
		Description: "Downloads and pipes a script into a shell",
	},
	{
		Name:        "netcat_connection",
		Regexp:      regexp.MustCompile(`(?i)\bnc\s+(?:-[a-z]+\s+){0,3}\d{1,3}(?:\.\d{1,3}){3}`),
		Severity:    types.SeverityHigh,
		Category:    CategoryNetworkAccess,
		Description: "Raw netcat connection to an IP address",
	},
	{
		Name:        "reverse_shell",
		Regexp:      regexp.MustCompile(`(?i)\b(?:bash|sh)\s+-i\b.{0,30}/dev/tcp/`),
		Severity:    types.SeverityCritical,
		Category:    CategoryNetworkAccess,
		Description: "Interactive reverse shell over /dev/tcp",
	},

	// data_exfiltration
	{
		Name:        "post_environment",
		Regexp:      regexp.MustCompile(`(?i)\bcurl\b.{0,60}(?:-d|--data)\b.{0,40}\$\{?[A-Z_]{2,}`),
		Severity:    types.SeverityHigh,
		Category:    CategoryDataExfiltration,
		Description: "Posts environment variables to a remote host",
	},
	{
		Name:        "credential_shipping",
		Regexp:      regexp.MustCompile(`(?i)\b(?:send|upload|post|exfiltrate|transmit)\b.{0,40}\b(?:credentials|secrets|tokens|api[_ ]?keys)\b`),
		Severity:    types.SeverityHigh,
		Category:    CategoryDataExfiltration,
		Description: "Ships credentials to an external destination",
	},
	{
		Name:        "collector_endpoint",
		Regexp:      regexp.MustCompile(`(?i)https?://(?:[a-z0-9-]{1,63}\.){0,5}(?:webhook|requestbin|pipedream)\.[a-z]{2,10}`),
		Severity:    types.SeverityMedium,
		Category:    CategoryDataExfiltration,
		Description: "Known request-collector endpoint",
	},

	// obfuscation
	{
		Name:        "base64_decode_exec",
		Regexp:      regexp.MustCompile(`(?i)\b(?:base64\s+(?:-d|--decode)|atob|b64decode)\b.{0,40}(?:\||exec|eval)`),
		Severity:    types.SeverityHigh,
		Category:    CategoryObfuscation,
		Description: "Decodes base64 into an execution sink",
	},
	{
		Name:        "long_base64_blob",
		Regexp:      regexp.MustCompile(`[A-Za-z0-9+/]{120,}={0,2}`),
		Severity:    types.SeverityMedium,
		Category:    CategoryObfuscation,
		Description: "Large opaque base64 payload",
	},
	{
		Name:        "hex_escape_run",
		Regexp:      regexp.MustCompile(`(?:\\x[0-9a-fA-F]{2}){8,}`),
		Severity:    types.SeverityMedium,
		Category:    CategoryObfuscation,
		Description: "Long run of hex escape sequences",
	},
	{
		Name:        "unicode_escape_run",
		Regexp:      regexp.MustCompile(`(?:\\u[0-9a-fA-F]{4}){8,}`),
		Severity:    types.SeverityMedium,
		Category:    CategoryObfuscation,
		Description: "Long run of unicode escape sequences",
	},

	// jailbreak
	{
		Name:        "dan_mode",
		Regexp:      regexp.MustCompile(`(?i)\b(?:DAN|do\s+anything\s+now)\s+mode\b`),
		Severity:    types.SeverityHigh,
		Category:    CategoryJailbreak,
		Description: "Do-anything-now jailbreak framing",
	},
	{
		Name:        "developer_mode",
		Regexp:      regexp.MustCompile(`(?i)\benable\s+developer\s+mode\b`),
		Severity:    types.SeverityHigh,
		Category:    CategoryJailbreak,
		Description: "Fake developer-mode unlock",
	},
	{
		Name:        "no_restrictions",
		Regexp:      regexp.MustCompile(`(?i)\bwithout\s+(?:any\s+)?(?:restrictions|limitations|filters|guardrails)\b`),
		Severity:    types.SeverityMedium,
		Category:    CategoryJailbreak,
		Description: "Requests removal of safety constraints",
	},
	{
		Name:        "hypothetical_bypass",
		Regexp:      regexp.MustCompile(`(?i)\bhypothetically\b.{0,40}\b(?:no\s+rules|anything\s+goes)\b`),
		Severity:    types.SeverityLow,
		Category:    CategoryJailbreak,
		Description: "Hypothetical framing to dodge constraints",
	},

	// yaml_security
	{
		Name:        "yaml_python_tag",
		Regexp:      regexp.MustCompile(`!!python/`),
		Severity:    types.SeverityCritical,
		Category:    CategoryYAMLSecurity,
		Description: "Python object construction tag in YAML",
	},
	{
		Name:        "yaml_binary_tag",
		Regexp:      regexp.MustCompile(`!!binary\b`),
		Severity:    types.SeverityMedium,
		Category:    CategoryYAMLSecurity,
		Description: "Embedded binary payload in YAML",
	},
	{
		Name:        "yaml_alias_expansion",
		Regexp:      regexp.MustCompile(`&[a-zA-Z0-9_]{1,20}\s+\[(?:\s{0,5}\*[a-zA-Z0-9_]{1,20}\s{0,5},?){5,}`),
		Severity:    types.SeverityMedium,
		Category:    CategoryYAMLSecurity,
		Description: "Anchor/alias expansion amplification",
	},

	// context_awareness
	{
		Name:        "system_prompt_probe",
		Regexp:      regexp.MustCompile(`(?i)\b(?:reveal|show|print|repeat|leak)\b.{0,30}\bsystem\s+prompt\b`),
		Severity:    types.SeverityHigh,
		Category:    CategoryContextAwareness,
		Description: "Probes for the system prompt",
	},
	{
		Name:        "history_dump",
		Regexp:      regexp.MustCompile(`(?i)\b(?:dump|show|print)\b.{0,30}\bconversation\s+history\b`),
		Severity:    types.SeverityMedium,
		Category:    CategoryContextAwareness,
		Description: "Requests the conversation transcript",
	},

	// sensitive_data
	{
		Name:        "aws_access_key",
		Regexp:      regexp.MustCompile(`\bAKIA[0-9A-Z]{16}\b`),
		Severity:    types.SeverityCritical,
		Category:    CategorySensitiveData,
		Description: "AWS access key ID",
	},
	{
		Name:        "private_key_block",
		Regexp:      regexp.MustCompile(`-----BEGIN (?:RSA |EC |OPENSSH )?PRIVATE KEY-----`),
		Severity:    types.SeverityCritical,
		Category:    CategorySensitiveData,
		Description: "PEM private key material",
	},
	{
		Name:        "hardcoded_api_key",
		Regexp:      regexp.MustCompile(`(?i)\b(?:api[_-]?key|secret[_-]?key|access[_-]?token)\s*[:=]\s*['"][A-Za-z0-9_\-]{16,}['"]`),
		Severity:    types.SeverityHigh,
		Category:    CategorySensitiveData,
		Description: "Hardcoded API credential",
	},
	{
		Name:        "hardcoded_password",
		Regexp:      regexp.MustCompile(`(?i)\bpassword\s*[:=]\s*['"][^'"]{4,64}['"]`),
		Severity:    types.SeverityMedium,
		Category:    CategorySensitiveData,
		Description: "Hardcoded password value",
	},

	// resource_exhaustion
	{
		Name:        "fork_bomb",
		Regexp:      regexp.MustCompile(`:\(\)\s*\{\s*:\|:&\s*\}`),
		Severity:    types.SeverityCritical,
		Category:    CategoryResourceExhaustion,
		Description: "Classic shell fork bomb",
	},
	{
		Name:        "unbounded_loop",
		Regexp:      regexp.MustCompile(`(?i)\bwhile\s+(?:true|1)\s*(?:;|do|\{)`),
		Severity:    types.SeverityLow,
		Category:    CategoryResourceExhaustion,
		Description: "Unbounded loop construct",
	},
	{
		Name:        "decompression_bomb",
		Regexp:      regexp.MustCompile(`(?i)\b(?:zip|decompression|billion\s+laughs)\s+bomb\b`),
		Severity:    types.SeverityLow,
		Category:    CategoryResourceExhaustion,
		Description: "References decompression amplification",
	},
}

// Catalog returns the full ordered pattern set. The returned slice is shared
// and must not be mutated by callers.
func Catalog() []Pattern {
	return catalog
}

// Len returns the number of patterns in the catalog.
func Len() int {
	return len(catalog)
}
