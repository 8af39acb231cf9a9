package gate_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/FortiumPartners/ensemble-sub005/internal/permission"
	"github.com/FortiumPartners/ensemble-sub005/internal/settings"
	"github.com/FortiumPartners/ensemble-sub005/internal/shell"
)

// writeSettingsFile writes a settings file under dir/.claude.
func writeSettingsFile(dir, name, content string) {
	claudeDir := filepath.Join(dir, ".claude")
	Expect(os.MkdirAll(claudeDir, 0o755)).To(Succeed())
	Expect(os.WriteFile(filepath.Join(claudeDir, name), []byte(content), 0o644)).To(Succeed())
}

var _ = Describe("Permission gate", func() {
	var (
		projectDir string
		homeDir    string
		gate       *permission.Gate
	)

	loadGate := func() {
		s := settings.Load(projectDir, homeDir)
		gate = permission.NewGate(s.Allow, s.Deny)
	}

	BeforeEach(func() {
		projectDir = GinkgoT().TempDir()
		homeDir = GinkgoT().TempDir()
	})

	Describe("a compound git command against a project allowlist", func() {
		BeforeEach(func() {
			writeSettingsFile(projectDir, "settings.json", `{
  "permissions": {
    "allow": ["Bash(git add:*)", "Bash(git commit:*)"]
  }
}`)
			loadGate()
		})

		It("allows when every unit matches", func() {
			d := gate.EvaluateCommand(`git add -A && git commit -m "fix: typo"`)
			Expect(d.Verdict).To(Equal(permission.VerdictAllow))
			Expect(d.Commands).To(HaveLen(2))
			Expect(d.Commands[0].Executable).To(Equal("git"))
		})

		It("asks when one unit falls outside the allowlist", func() {
			d := gate.EvaluateCommand("git add -A && git push origin main")
			Expect(d.Verdict).To(Equal(permission.VerdictAsk))
			Expect(d.Reason).To(ContainSubstring("git push origin main"))
		})
	})

	Describe("environment prefixes and wrappers", func() {
		BeforeEach(func() {
			writeSettingsFile(projectDir, "settings.json", `{
  "permissions": {
    "allow": ["Bash(npm test:*)"]
  }
}`)
			loadGate()
		})

		It("strips a leading assignment before matching", func() {
			d := gate.EvaluateCommand("API_KEY=secret npm test")
			Expect(d.Verdict).To(Equal(permission.VerdictAllow))
			Expect(d.Commands).To(Equal([]shell.Command{
				{Executable: "npm", Args: "test"},
			}))
		})

		It("strips a timeout wrapper before matching", func() {
			d := gate.EvaluateCommand("timeout 300 npm test -- --runInBand")
			Expect(d.Verdict).To(Equal(permission.VerdictAllow))
		})

		It("judges the executable a wrapper actually launches", func() {
			d := gate.EvaluateCommand("nohup curl http://example.com")
			Expect(d.Verdict).To(Equal(permission.VerdictAsk))
			Expect(d.Reason).To(ContainSubstring("curl"))
		})
	})

	Describe("deny precedence", func() {
		BeforeEach(func() {
			writeSettingsFile(projectDir, "settings.json", `{
  "permissions": {
    "allow": ["Bash(git:*)"],
    "deny": ["Bash(git push --force:*)"]
  }
}`)
			loadGate()
		})

		It("denies a unit covered by both lists", func() {
			d := gate.EvaluateCommand("git push --force origin main")
			Expect(d.Verdict).To(Equal(permission.VerdictDeny))
			Expect(d.Reason).To(ContainSubstring("Bash(git push --force:*)"))
		})

		It("denies the whole chain when any unit is denied", func() {
			d := gate.EvaluateCommand("git status && git push --force origin main")
			Expect(d.Verdict).To(Equal(permission.VerdictDeny))
		})
	})

	Describe("unsafe constructs", func() {
		BeforeEach(func() {
			writeSettingsFile(projectDir, "settings.json", `{
  "permissions": {
    "allow": ["Bash(git:*)", "Bash(echo:*)"]
  }
}`)
			loadGate()
		})

		DescribeTable("always resolve to ask",
			func(command string) {
				d := gate.EvaluateCommand(command)
				Expect(d.Verdict).To(Equal(permission.VerdictAsk))
				Expect(d.Reason).To(ContainSubstring("unsafe shell construct"))
			},
			Entry("command substitution", "git commit -m $(cat msg)"),
			Entry("backticks", "echo `whoami`"),
			Entry("process substitution", "diff <(sort a) <(sort b)"),
			Entry("heredoc", "cat <<EOF\nhi\nEOF"),
			Entry("substitution hidden in a payload", `bash -c 'echo $(id)'`),
		)
	})

	Describe("layered settings files", func() {
		BeforeEach(func() {
			writeSettingsFile(projectDir, "settings.local.json", `{
  "permissions": {"allow": ["Bash(make:*)"]}
}`)
			writeSettingsFile(projectDir, "settings.json", `{
  "permissions": {"allow": ["Bash(git:*)"], "deny": ["Bash(rm:*)"]}
}`)
			writeSettingsFile(homeDir, "settings.json", `{
  "permissions": {"allow": ["Bash(ls:*)"]}
}`)
			loadGate()
		})

		It("honors patterns from every layer", func() {
			Expect(gate.EvaluateCommand("make build").Verdict).To(Equal(permission.VerdictAllow))
			Expect(gate.EvaluateCommand("git status").Verdict).To(Equal(permission.VerdictAllow))
			Expect(gate.EvaluateCommand("ls -la").Verdict).To(Equal(permission.VerdictAllow))
		})

		It("applies a deny from any layer across all of them", func() {
			Expect(gate.EvaluateCommand("rm -rf build").Verdict).To(Equal(permission.VerdictDeny))
		})
	})

	Describe("MCP tools", func() {
		BeforeEach(func() {
			writeSettingsFile(projectDir, "settings.json", `{
  "permissions": {
    "allow": ["mcp__playwright__*"],
    "deny": ["mcp__playwright__browser_file_upload"]
  }
}`)
			loadGate()
		})

		It("allows tools under the server wildcard", func() {
			d := gate.EvaluateTool("mcp__playwright__browser_click")
			Expect(d.Verdict).To(Equal(permission.VerdictAllow))
		})

		It("lets a deny carve a tool out of the wildcard", func() {
			d := gate.EvaluateTool("mcp__playwright__browser_file_upload")
			Expect(d.Verdict).To(Equal(permission.VerdictDeny))
		})

		It("asks for servers nobody listed", func() {
			d := gate.EvaluateTool("mcp__filesystem__delete")
			Expect(d.Verdict).To(Equal(permission.VerdictAsk))
		})
	})

	Describe("with no settings files at all", func() {
		BeforeEach(func() {
			loadGate()
		})

		It("asks for everything that runs something", func() {
			Expect(gate.EvaluateCommand("ls").Verdict).To(Equal(permission.VerdictAsk))
			Expect(gate.EvaluateTool("mcp__db__query").Verdict).To(Equal(permission.VerdictAsk))
		})

		It("still recognizes inputs with nothing to authorize", func() {
			Expect(gate.EvaluateCommand("FOO=bar").Verdict).To(Equal(permission.VerdictNone))
		})
	})
})
