package lambdalabs

// Snapshot is one full instance-type listing from the API, keyed by the
// provider's opaque instance-type identifier. It is produced fresh on every
// poll and never mutated afterwards.
type Snapshot map[string]Offering

// Offering pairs an instance type with the regions that currently have
// spare capacity for it.
type Offering struct {
	InstanceType InstanceType `json:"instance_type"`
	Regions      []Region     `json:"regions_with_capacity_available"`
}

// InstanceType describes a purchasable instance configuration.
type InstanceType struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	GPUDescription    string `json:"gpu_description"`
	PriceCentsPerHour int    `json:"price_cents_per_hour"`
	Specs             Specs  `json:"specs"`
}

// Specs holds the hardware dimensions of an instance type. The API omits
// fields it does not know; pointer fields distinguish "absent" from zero.
type Specs struct {
	GPUs       int  `json:"gpus"`
	VCPUs      *int `json:"vcpus"`
	MemoryGiB  *int `json:"memory_gib"`
	StorageGiB *int `json:"storage_gib"`
}

// Region is a datacenter location as reported by the API.
type Region struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
