package protocol

// Particle discriminator codes that carry a payload. Every other code
// in range is a zero-payload particle.
const (
	ParticleBlock       int32 = 3
	ParticleDust        int32 = 14
	ParticleFallingDust int32 = 23
	ParticleItem        int32 = 32
)

// Particle is a VarInt-discriminated particle effect. Only the four
// codes above carry a payload; BlockState/Red/Green/Blue/Scale/Item are
// populated only for the matching code.
type Particle struct {
	ID int32

	BlockState int32 // ParticleBlock, ParticleFallingDust

	Red, Green, Blue, Scale float32 // ParticleDust

	Item Slot // ParticleItem
}

// ReadParticle reads the VarInt discriminator and any kind-specific
// payload.
func (r *Reader) ReadParticle() (Particle, error) {
	id, err := r.ReadVarInt()
	if err != nil {
		return Particle{}, err
	}

	p := Particle{ID: id}

	switch id {
	case ParticleBlock, ParticleFallingDust:
		p.BlockState, err = r.ReadVarInt()
	case ParticleDust:
		if p.Red, err = r.ReadFloat32(); err != nil {
			return Particle{}, err
		}

		if p.Green, err = r.ReadFloat32(); err != nil {
			return Particle{}, err
		}

		if p.Blue, err = r.ReadFloat32(); err != nil {
			return Particle{}, err
		}

		p.Scale, err = r.ReadFloat32()
	case ParticleItem:
		p.Item, err = r.ReadSlot()
	}

	if err != nil {
		return Particle{}, err
	}

	return p, nil
}

// WriteParticle writes the VarInt discriminator and any kind-specific
// payload.
func (w *Writer) WriteParticle(p Particle) error {
	if err := w.WriteVarInt(p.ID); err != nil {
		return err
	}

	switch p.ID {
	case ParticleBlock, ParticleFallingDust:
		return w.WriteVarInt(p.BlockState)
	case ParticleDust:
		if err := w.WriteFloat32(p.Red); err != nil {
			return err
		}

		if err := w.WriteFloat32(p.Green); err != nil {
			return err
		}

		if err := w.WriteFloat32(p.Blue); err != nil {
			return err
		}

		return w.WriteFloat32(p.Scale)
	case ParticleItem:
		return w.WriteSlot(p.Item)
	}

	return nil
}
