package command

// aiderDockerfile builds a container with the aider AI assistant installed.
const aiderDockerfile = `FROM python:3.12-slim

RUN apt-get update && apt-get install -y --no-install-recommends git \
    && rm -rf /var/lib/apt/lists/*

RUN pip install --no-cache-dir aider-chat

RUN groupadd -g 1000 worker && useradd -u 1000 -g 1000 -m worker
USER 1000:1000

WORKDIR /workspace
CMD ["sleep", "infinity"]
`

// Builtins returns the descriptors that ship with workbench
func Builtins() []Descriptor {
	aider, err := NewManifestDescriptor(Manifest{
		Name:        "aider",
		Description: "Run the aider AI assistant with a prompt",
		Documentation: `Executes the aider AI assistant against the mounted repository.

Required arguments:
- prompt: the instruction for aider`,
		Dockerfile: aiderDockerfile,
		Command:    "aider --no-git --yes ${prompt}",
	})
	if err != nil {
		// The built-in manifest is static; a validation failure here is a bug.
		panic(err)
	}

	return []Descriptor{aider}
}
